package qualify

import (
	"fmt"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
)

// Point contributions and gates for the manual qualification rule.
//
//	responses >= 2        +25
//	media outlets >= 3    +30
//	any repercussion      +30
//	views > 10000         +15
//
// A statement qualifies when at least MinCriteriaMet of the four signals hold
// AND the cumulative score reaches MinScore. The dual gate keeps a single
// strong signal (a lone repercussion is worth 30) from triggering promotion.
const (
	PointsResponses    = 25
	PointsMediaOutlets = 30
	PointsRepercussion = 30
	PointsEngagement   = 15

	MinResponses    = 2
	MinMediaOutlets = 3
	ViewThreshold   = 10000

	MinScore       = 50
	MinCriteriaMet = 2
)

// ManualPolicy is the additive four-signal rule used by the admin promotion
// surface.
type ManualPolicy struct{}

func (ManualPolicy) Name() string { return "manual" }

func (ManualPolicy) Evaluate(s *model.Statement) Criteria {
	c := Criteria{
		ResponseCount:    len(s.Responses),
		MediaOutletCount: MediaOutletCount(s.Sources),
	}

	criteriaMet := 0

	if c.ResponseCount >= MinResponses {
		c.Score += PointsResponses
		c.Reasons = append(c.Reasons, fmt.Sprintf("Multiple responses (%d)", c.ResponseCount))
		criteriaMet++
	}

	if c.MediaOutletCount >= MinMediaOutlets {
		c.Score += PointsMediaOutlets
		c.Reasons = append(c.Reasons, fmt.Sprintf("Significant media coverage (%d outlets)", c.MediaOutletCount))
		criteriaMet++
	}

	if RepercussionCount(s) > 0 {
		c.HasRepercussion = true
		c.Score += PointsRepercussion
		c.Reasons = append(c.Reasons, "Has real-world repercussions")
		criteriaMet++
	}

	if s.ViewCount > ViewThreshold {
		c.HasPublicReaction = true
		c.Score += PointsEngagement
		c.Reasons = append(c.Reasons, "High public engagement")
		criteriaMet++
	}

	c.MeetsThreshold = criteriaMet >= MinCriteriaMet && c.Score >= MinScore
	return c
}
