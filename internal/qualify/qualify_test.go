package qualify

import (
	"fmt"
	"testing"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementWith(responses, sources, repercussions int, views int64) *model.Statement {
	s := &model.Statement{ID: "stmt-1", ViewCount: views}
	for i := 0; i < responses; i++ {
		s.Responses = append(s.Responses, model.Statement{ID: fmt.Sprintf("resp-%d", i)})
	}
	for i := 0; i < sources; i++ {
		s.Sources = append(s.Sources, model.Source{Publication: fmt.Sprintf("Outlet %d", i)})
	}
	for i := 0; i < repercussions; i++ {
		s.RepercussionsAbout = append(s.RepercussionsAbout, model.Repercussion{Title: "consequence"})
	}
	return s
}

func TestManualPolicy_MediaCoverageAlone(t *testing.T) {
	// Three sources from three distinct publications, nothing else.
	c := ManualPolicy{}.Evaluate(statementWith(0, 3, 0, 0))

	assert.Equal(t, 3, c.MediaOutletCount)
	assert.Equal(t, 30, c.Score)
	assert.False(t, c.MeetsThreshold, "one criterion must never qualify")
	require.Len(t, c.Reasons, 1)
}

func TestManualPolicy_ResponsesPlusRepercussion(t *testing.T) {
	c := ManualPolicy{}.Evaluate(statementWith(2, 0, 1, 0))

	assert.Equal(t, 55, c.Score)
	assert.True(t, c.HasRepercussion)
	assert.True(t, c.MeetsThreshold)
	assert.Len(t, c.Reasons, 2)
}

func TestManualPolicy_RepercussionAloneNeverQualifies(t *testing.T) {
	// Worth 30 points but a single signal: the dual gate must reject it.
	c := ManualPolicy{}.Evaluate(statementWith(0, 0, 5, 0))

	assert.Equal(t, 30, c.Score)
	assert.False(t, c.MeetsThreshold)
}

func TestManualPolicy_EngagementCriterion(t *testing.T) {
	c := ManualPolicy{}.Evaluate(statementWith(0, 0, 0, 10001))
	assert.True(t, c.HasPublicReaction)
	assert.Equal(t, 15, c.Score)
	assert.Contains(t, c.Reasons, "High public engagement")

	// Exactly at the threshold does not count; the gate is strict.
	c = ManualPolicy{}.Evaluate(statementWith(0, 0, 0, 10000))
	assert.False(t, c.HasPublicReaction)
	assert.Zero(t, c.Score)
}

func TestManualPolicy_MaxScore(t *testing.T) {
	c := ManualPolicy{}.Evaluate(statementWith(5, 4, 2, 50000))
	assert.Equal(t, 100, c.Score)
	assert.True(t, c.MeetsThreshold)
	assert.Len(t, c.Reasons, 4)
}

func TestManualPolicy_ScoreIsSumOfContributions(t *testing.T) {
	// Every criterion combination: the score must be exactly the sum of the
	// four independent contributions, inside [0,100].
	for _, responses := range []int{0, 2} {
		for _, sources := range []int{0, 3} {
			for _, reps := range []int{0, 1} {
				for _, views := range []int64{0, 20000} {
					c := ManualPolicy{}.Evaluate(statementWith(responses, sources, reps, views))

					want := 0
					if responses >= MinResponses {
						want += PointsResponses
					}
					if sources >= MinMediaOutlets {
						want += PointsMediaOutlets
					}
					if reps > 0 {
						want += PointsRepercussion
					}
					if views > ViewThreshold {
						want += PointsEngagement
					}
					assert.Equal(t, want, c.Score)
					assert.GreaterOrEqual(t, c.Score, 0)
					assert.LessOrEqual(t, c.Score, 100)
				}
			}
		}
	}
}

func TestMediaOutletCount_Deduplicates(t *testing.T) {
	sources := []model.Source{
		{Publication: "The Gazette"},
		{Publication: "The Gazette"},
		{Publication: "The Daily Post"},
		{Publication: ""}, // unattributed source does not count
	}
	assert.Equal(t, 2, MediaOutletCount(sources))
}

func TestManualPolicy_CountsBothRepercussionRoles(t *testing.T) {
	s := statementWith(0, 0, 0, 0)
	s.RepercussionsCaused = append(s.RepercussionsCaused, model.Repercussion{Title: "resignation"})
	c := ManualPolicy{}.Evaluate(s)
	assert.True(t, c.HasRepercussion)
	assert.Equal(t, 30, c.Score)
}

func TestAutoPolicy_Threshold(t *testing.T) {
	// Strictly more than two responses.
	assert.False(t, AutoPolicy{}.Evaluate(statementWith(2, 0, 0, 0)).MeetsThreshold)
	assert.True(t, AutoPolicy{}.Evaluate(statementWith(3, 0, 0, 0)).MeetsThreshold)
}

func TestBandedScore(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  0,
		2:  0,
		3:  40,
		4:  50,
		5:  60,
		6:  61,
		7:  65,
		10: 77,
		11: 81,
		15: 89,
		20: 99,
		21: 100,
		50: 100, // capped
	}
	for n, want := range cases {
		assert.Equal(t, want, BandedScore(n), "responseCount=%d", n)
	}
}

func TestPoliciesDiverge(t *testing.T) {
	// Three responses and nothing else: the auto rule promotes, the manual
	// rule does not. The divergence is intentional.
	s := statementWith(3, 0, 0, 0)
	assert.True(t, AutoPolicy{}.Evaluate(s).MeetsThreshold)
	assert.False(t, ManualPolicy{}.Evaluate(s).MeetsThreshold)
}
