package notify

// StatementPromotedEvent is sent when a statement is promoted into a case
// through the admin surface.
type StatementPromotedEvent struct {
	CaseID      string
	CaseSlug    string
	CaseTitle   string
	StatementID string
	Score       int
	PromotedBy  string
	Manual      bool
}

// AutoPromotionEvent is sent after a cron auto-promotion run that flipped at
// least one case to real-incident status.
type AutoPromotionEvent struct {
	Scanned  int
	Promoted int
	Failed   int
}
