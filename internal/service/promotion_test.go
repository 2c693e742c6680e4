package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/miles-brown/The-Words-Record-sub005/internal/audit"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/qualify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAuditor captures dispatched events for assertions. Dispatch runs
// on a goroutine, so reads go through the mutex and require.Eventually.
type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Record(_ context.Context, e audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingAuditor) snapshot() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}

func TestPromoteStatementToCase(t *testing.T) {
	db := newTestDB(t)
	auditor := &recordingAuditor{}
	svc := NewPromotionService(db, auditor, nil)

	fx := defaultFixture()
	fx.person = createPerson(t, db, "Morgan Reyes")
	fx.responses = 3
	fx.publications = []string{"The Ledger", "Channel 9", "Metro Times"}
	stmt := createStatement(t, db, fx)

	cs, err := svc.PromoteStatementToCase(stmt.ID, "admin@example.com", "", false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cs.Slug, "case-"))
	assert.True(t, cs.IsRealIncident)
	assert.False(t, cs.WasManuallyPromoted)
	assert.Equal(t, "admin@example.com", cs.PromotedBy)
	assert.Equal(t, qualify.PointsResponses+qualify.PointsMediaOutlets, cs.QualificationScore)
	assert.Equal(t, 3, cs.ResponseCount)
	assert.Equal(t, 3, cs.MediaOutletCount)
	assert.Equal(t, model.CaseStatusDocumented, cs.Status)
	assert.Equal(t, model.VisibilityPublic, cs.Visibility)
	require.NotNil(t, cs.OriginatingStatementID)
	assert.Equal(t, stmt.ID, *cs.OriginatingStatementID)
	assert.NotEmpty(t, cs.PromotionReason)
	assert.Contains(t, cs.Title, "Morgan Reyes")

	// The statement and its whole response thread now belong to the case.
	var linked int64
	require.NoError(t, db.Model(&model.Statement{}).Where("case_id = ?", cs.ID).Count(&linked).Error)
	assert.EqualValues(t, 4, linked)

	var reloaded model.Case
	require.NoError(t, db.Preload("People").First(&reloaded, "id = ?", cs.ID).Error)
	require.Len(t, reloaded.People, 1)
	assert.Equal(t, "Morgan Reyes", reloaded.People[0].Name)

	require.Eventually(t, func() bool {
		return len(auditor.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	ev := auditor.snapshot()[0]
	assert.Equal(t, audit.ActionPromote, ev.Action)
	assert.Equal(t, cs.ID, ev.ResourceID)
	assert.Equal(t, "admin@example.com", ev.Actor)
}

func TestPromoteRejectsBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	// Media coverage alone: one criterion, score 30.
	fx := defaultFixture()
	fx.publications = []string{"A", "B", "C"}
	stmt := createStatement(t, db, fx)

	_, err := svc.PromoteStatementToCase(stmt.ID, "admin@example.com", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "40901")
	assert.Contains(t, err.Error(), "score 30/50")

	// Nothing was written.
	var count int64
	require.NoError(t, db.Model(&model.Case{}).Count(&count).Error)
	assert.Zero(t, count)
	var reloaded model.Statement
	require.NoError(t, db.First(&reloaded, "id = ?", stmt.ID).Error)
	assert.Nil(t, reloaded.CaseID)
}

func TestPromoteRejectsAlreadyPromoted(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	fx := defaultFixture()
	fx.responses = 2
	fx.repercussions = 1
	stmt := createStatement(t, db, fx)

	_, err := svc.PromoteStatementToCase(stmt.ID, "admin@example.com", "", false)
	require.NoError(t, err)

	_, err = svc.PromoteStatementToCase(stmt.ID, "admin@example.com", "", false)
	require.ErrorIs(t, err, errAlreadyPromoted)

	var count int64
	require.NoError(t, db.Model(&model.Case{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no second case left behind")
}

func TestPromoteManualOverride(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	stmt := createStatement(t, db, defaultFixture())

	cs, err := svc.PromoteStatementToCase(stmt.ID, "editor@example.com", "noteworthy despite low score", true)
	require.NoError(t, err)
	assert.True(t, cs.WasManuallyPromoted)
	assert.Zero(t, cs.QualificationScore)
	assert.Equal(t, "noteworthy despite low score", cs.PromotionReason)
}

func TestPromoteKeepsMultibyteContentIntact(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	// 250 two-byte runes: a byte-based cut at 100 or 200 would split one
	// mid-sequence and persist invalid UTF-8.
	fx := defaultFixture()
	fx.content = strings.Repeat("é", 250)
	fx.responses = 2
	fx.repercussions = 1
	stmt := createStatement(t, db, fx)

	cs, err := svc.PromoteStatementToCase(stmt.ID, "admin@example.com", "", false)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(cs.Title))
	assert.True(t, utf8.ValidString(cs.Summary))
	assert.Contains(t, cs.Title, strings.Repeat("é", 100))
	assert.NotContains(t, cs.Title, strings.Repeat("é", 101))
	assert.Equal(t, strings.Repeat("é", 200), cs.Summary)

	var stored model.Case
	require.NoError(t, db.First(&stored, "id = ?", cs.ID).Error)
	assert.True(t, utf8.ValidString(stored.Title))
	assert.True(t, utf8.ValidString(stored.Summary))
}

func TestPromoteRollsBackWhenStatementClaimedMidFlight(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	fx := defaultFixture()
	fx.responses = 2
	fx.repercussions = 1
	stmt := createStatement(t, db, fx)

	// Snapshot taken before a rival promotion claims the statement; the
	// pre-check passes on the stale row, so only the in-transaction guard
	// can catch the conflict.
	loaded, err := loadForScoring(db, stmt.ID)
	require.NoError(t, err)

	rival := &model.Case{
		ID:         uuid.NewString(),
		Slug:       "rival",
		Title:      "Rival",
		CaseDate:   time.Now(),
		Status:     model.CaseStatusDocumented,
		Visibility: model.VisibilityPublic,
	}
	require.NoError(t, db.Create(rival).Error)
	require.NoError(t, db.Model(&model.Statement{}).Where("id = ?", stmt.ID).Update("case_id", rival.ID).Error)

	now := time.Now()
	newCase := &model.Case{
		ID:                     uuid.NewString(),
		Title:                  "Late arrival",
		CaseDate:               loaded.StatementDate,
		Status:                 model.CaseStatusDocumented,
		Visibility:             model.VisibilityPublic,
		PromotedAt:             &now,
		OriginatingStatementID: &loaded.ID,
	}
	err = svc.applyPromotion(loaded, newCase, now)
	require.ErrorIs(t, err, errAlreadyPromoted)

	// The whole transaction rolled back: no second case, no relinked rows.
	var cases int64
	require.NoError(t, db.Model(&model.Case{}).Count(&cases).Error)
	assert.EqualValues(t, 1, cases)

	var reloaded model.Statement
	require.NoError(t, db.First(&reloaded, "id = ?", stmt.ID).Error)
	require.NotNil(t, reloaded.CaseID)
	assert.Equal(t, rival.ID, *reloaded.CaseID)

	var relinked int64
	require.NoError(t, db.Model(&model.Statement{}).Where("case_id = ?", newCase.ID).Count(&relinked).Error)
	assert.Zero(t, relinked)
}

func TestPromoteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db, audit.NoopRecorder{}, nil)

	_, err := svc.PromoteStatementToCase("missing", "admin@example.com", "", false)
	require.ErrorIs(t, err, errStatementNotFound)
}
