package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/miles-brown/The-Words-Record-sub005/internal/audit"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/notify"
	"github.com/miles-brown/The-Words-Record-sub005/internal/qualify"
	"github.com/miles-brown/The-Words-Record-sub005/internal/worker"
	"gorm.io/gorm"
)

// AutoPromotionService is the cron-driven qualification path. It never creates
// cases: it flips a statement's existing statement-page case into a real
// incident when the response count clears the auto threshold.
//
// This is deliberately not a call into PromotionService; the two rules use
// different formulas and may disagree on the same statement.
type AutoPromotionService struct {
	db       *gorm.DB
	pool     *worker.Pool
	policy   qualify.Policy
	auditor  audit.Recorder
	notifier notify.Notifier
}

func NewAutoPromotionService(db *gorm.DB, pool *worker.Pool, auditor audit.Recorder, notifier notify.Notifier) *AutoPromotionService {
	return &AutoPromotionService{
		db:       db,
		pool:     pool,
		policy:   qualify.AutoPolicy{},
		auditor:  auditor,
		notifier: notifier,
	}
}

type PromotedCase struct {
	CaseID        string `json:"case_id"`
	Slug          string `json:"slug"`
	StatementID   string `json:"statement_id"`
	Score         int    `json:"score"`
	ResponseCount int    `json:"response_count"`
}

type AutoPromotionResult struct {
	TotalStatements int            `json:"total_statements"`
	Qualified       int            `json:"qualified"`
	Promoted        int            `json:"promoted"`
	PromotedCases   []PromotedCase `json:"promoted_cases"`
}

// Run scans every statement whose case is not yet a real incident and
// promotes the qualifying ones. One bad statement never aborts the run; it is
// logged and the rest of the batch proceeds. Re-running is safe: the
// is_real_incident filter makes already-flipped cases invisible to the scan.
func (s *AutoPromotionService) Run(ctx context.Context) (*AutoPromotionResult, error) {
	var candidateIDs []string
	err := s.db.WithContext(ctx).Model(&model.Statement{}).
		Joins("JOIN cases ON cases.id = statements.case_id").
		Where("cases.is_real_incident = ? AND cases.deleted_at IS NULL", false).
		Pluck("statements.id", &candidateIDs).Error
	if err != nil {
		return nil, err
	}

	result := &AutoPromotionResult{
		TotalStatements: len(candidateIDs),
		PromotedCases:   make([]PromotedCase, 0),
	}

	var (
		mu     sync.Mutex
		failed int
	)
	tasks := make([]worker.TaskFunc, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		statementID := id
		tasks = append(tasks, func() {
			qualified, promoted, err := s.promoteOne(ctx, statementID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				log.Printf("auto-promote: statement %s: %v", statementID, err)
				return
			}
			if qualified {
				result.Qualified++
			}
			if promoted != nil {
				result.Promoted++
				result.PromotedCases = append(result.PromotedCases, *promoted)
			}
		})
	}
	s.pool.RunBatch(tasks)

	if result.Promoted > 0 && s.notifier != nil {
		go s.notifier.NotifyAutoPromotionRun(context.Background(), notify.AutoPromotionEvent{
			Scanned:  result.TotalStatements,
			Promoted: result.Promoted,
			Failed:   failed,
		})
	}
	return result, nil
}

// promoteOne re-checks eligibility and flips the case in one transaction.
func (s *AutoPromotionService) promoteOne(ctx context.Context, statementID string) (qualified bool, promoted *PromotedCase, err error) {
	stmt, err := loadForScoring(s.db.WithContext(ctx), statementID)
	if err != nil {
		return false, nil, err
	}
	if stmt.CaseID == nil {
		return false, nil, nil
	}

	criteria := s.policy.Evaluate(stmt)
	if !criteria.MeetsThreshold {
		return false, nil, nil
	}

	now := time.Now()
	reason := ""
	if len(criteria.Reasons) > 0 {
		reason = criteria.Reasons[0]
	}

	var caseSlug string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditioned on is_real_incident = false so a concurrent or repeated
		// run leaves an already-promoted case untouched.
		res := tx.Model(&model.Case{}).
			Where("id = ? AND is_real_incident = ?", *stmt.CaseID, false).
			Updates(map[string]interface{}{
				"is_real_incident":         true,
				"was_auto_imported":        false,
				"promoted_at":              &now,
				"promoted_by":              model.PromotedByCron,
				"promotion_reason":         reason,
				"originating_statement_id": stmt.ID,
				"qualification_score":      criteria.Score,
				"response_count":           criteria.ResponseCount,
				"visibility":               model.VisibilityPublic,
				"status":                   model.CaseStatusDocumented,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var cs model.Case
		if err := tx.Select("slug").First(&cs, "id = ?", *stmt.CaseID).Error; err != nil {
			return err
		}
		caseSlug = cs.Slug
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Another run got here first.
			return true, nil, nil
		}
		return true, nil, err
	}

	audit.Dispatch(s.auditor, audit.Event{
		Actor:        model.PromotedByCron,
		Action:       audit.ActionAutoPromote,
		ResourceType: audit.ResourceCase,
		ResourceID:   *stmt.CaseID,
		Detail: model.JSONMap{
			"statement_id":   stmt.ID,
			"score":          criteria.Score,
			"response_count": criteria.ResponseCount,
		},
	})

	return true, &PromotedCase{
		CaseID:        *stmt.CaseID,
		Slug:          caseSlug,
		StatementID:   stmt.ID,
		Score:         criteria.Score,
		ResponseCount: criteria.ResponseCount,
	}, nil
}
