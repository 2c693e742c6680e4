// Package qualify decides whether a statement is noteworthy enough to become
// a full incident case. Two deliberately different rules coexist: the manual
// path scores four independent signals, the cron path looks only at response
// counts. They can disagree on the same statement; do not unify them.
package qualify

import (
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
)

// Criteria is the outcome of evaluating a statement against a policy.
type Criteria struct {
	HasPublicReaction bool     `json:"has_public_reaction"`
	ResponseCount     int      `json:"response_count"`
	MediaOutletCount  int      `json:"media_outlet_count"`
	HasRepercussion   bool     `json:"has_repercussion"`
	Score             int      `json:"score"`
	MeetsThreshold    bool     `json:"meets_threshold"`
	Reasons           []string `json:"reasons"`
}

// Policy evaluates a statement loaded with its responses, sources and
// repercussions. Implementations must be pure: no I/O, no mutation.
type Policy interface {
	Name() string
	Evaluate(s *model.Statement) Criteria
}

// MediaOutletCount counts distinct non-empty publication names across the
// statement's sources.
func MediaOutletCount(sources []model.Source) int {
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if src.Publication == "" {
			continue
		}
		seen[src.Publication] = struct{}{}
	}
	return len(seen)
}

// RepercussionCount totals repercussions in both roles.
func RepercussionCount(s *model.Statement) int {
	return len(s.RepercussionsAbout) + len(s.RepercussionsCaused)
}
