package qualify

import (
	"fmt"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
)

// AutoResponseThreshold is the cron rule's only gate: strictly more than this
// many direct responses.
const AutoResponseThreshold = 2

// AutoPolicy is the coarser response-count-only rule used by the scheduled
// auto-promotion task. Its banded score is not comparable with ManualPolicy's.
type AutoPolicy struct{}

func (AutoPolicy) Name() string { return "auto" }

func (AutoPolicy) Evaluate(s *model.Statement) Criteria {
	n := len(s.Responses)
	c := Criteria{
		ResponseCount:  n,
		Score:          BandedScore(n),
		MeetsThreshold: n > AutoResponseThreshold,
	}
	if c.MeetsThreshold {
		c.Reasons = append(c.Reasons,
			fmt.Sprintf("Response count %d exceeds auto-promotion threshold of %d", n, AutoResponseThreshold))
	}
	return c
}

// BandedScore maps a response count onto the cron score bands:
//
//	0-2    0
//	3-5    40, 50, 60
//	6-10   61, 65, 69, 73, 77
//	11+    81 + 2 per extra response, capped at 100
func BandedScore(responseCount int) int {
	switch {
	case responseCount <= 2:
		return 0
	case responseCount <= 5:
		return 40 + (responseCount-3)*10
	case responseCount <= 10:
		return 61 + (responseCount-6)*4
	default:
		score := 81 + (responseCount-11)*2
		if score > 100 {
			return 100
		}
		return score
	}
}
