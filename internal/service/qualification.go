package service

import (
	"sort"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/qualify"
	"gorm.io/gorm"
)

// candidateOverfetch compensates for post-filtering: most recent statements
// will not meet the threshold, so we pull more candidates than requested.
const candidateOverfetch = 3

type QualificationService struct {
	db     *gorm.DB
	policy qualify.Policy
}

func NewQualificationService(db *gorm.DB) *QualificationService {
	return &QualificationService{db: db, policy: qualify.ManualPolicy{}}
}

// QualifiedStatement pairs a candidate with its evaluated criteria.
type QualifiedStatement struct {
	Statement *model.Statement
	Criteria  qualify.Criteria
}

// Score loads a statement with everything the policy needs and evaluates it.
func (s *QualificationService) Score(statementID string) (*model.Statement, qualify.Criteria, error) {
	stmt, err := loadForScoring(s.db, statementID)
	if err != nil {
		return nil, qualify.Criteria{}, err
	}
	return stmt, s.policy.Evaluate(stmt), nil
}

// ListQualifiedStatements returns up to limit unpromoted ORIGINAL statements
// that meet the manual threshold, sorted by score descending.
//
// Candidates are scanned newest-first and scored one at a time; the scan stops
// as soon as limit qualifying statements are found. Each score issues its own
// fetch, so this costs one round trip per candidate. Fine for an admin surface,
// not for a hot path.
func (s *QualificationService) ListQualifiedStatements(limit int) ([]QualifiedStatement, error) {
	if limit < 1 {
		limit = 10
	}

	var candidateIDs []string
	err := s.db.Model(&model.Statement{}).
		Where("statement_type = ? AND case_id IS NULL", model.StatementTypeOriginal).
		Order("statement_date desc").
		Limit(limit * candidateOverfetch).
		Pluck("id", &candidateIDs).Error
	if err != nil {
		return nil, err
	}

	qualified := make([]QualifiedStatement, 0, limit)
	for _, id := range candidateIDs {
		stmt, criteria, err := s.Score(id)
		if err != nil {
			return nil, err
		}
		if !criteria.MeetsThreshold {
			continue
		}
		qualified = append(qualified, QualifiedStatement{Statement: stmt, Criteria: criteria})
		if len(qualified) >= limit {
			break
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Criteria.Score > qualified[j].Criteria.Score
	})
	return qualified, nil
}

// loadForScoring fetches a statement with the relations the policies read.
func loadForScoring(db *gorm.DB, id string) (*model.Statement, error) {
	var stmt model.Statement
	err := db.Preload("Person").Preload("Organization").
		Preload("Responses").Preload("Sources").
		Preload("RepercussionsAbout").Preload("RepercussionsCaused").
		First(&stmt, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errStatementNotFound
		}
		return nil, err
	}
	return &stmt, nil
}
