package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miles-brown/The-Words-Record-sub005/internal/audit"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/miles-brown/The-Words-Record-sub005/internal/notify"
	"github.com/miles-brown/The-Words-Record-sub005/internal/qualify"
	"gorm.io/gorm"
)

const slugAttempts = 5

type PromotionService struct {
	db       *gorm.DB
	policy   qualify.Policy
	auditor  audit.Recorder
	notifier notify.Notifier
}

func NewPromotionService(db *gorm.DB, auditor audit.Recorder, notifier notify.Notifier) *PromotionService {
	return &PromotionService{
		db:       db,
		policy:   qualify.ManualPolicy{},
		auditor:  auditor,
		notifier: notifier,
	}
}

// PromoteStatementToCase converts a statement and its direct response thread
// into a new case. Unless isManualOverride is set, the statement must meet
// the manual qualification threshold.
//
// All writes run in one transaction: the case insert, the optimistic
// case_id update on the originating statement, and the bulk update of its
// responses either all land or none do.
func (s *PromotionService) PromoteStatementToCase(statementID, promotedBy, promotionReason string, isManualOverride bool) (*model.Case, error) {
	stmt, err := loadForScoring(s.db, statementID)
	if err != nil {
		return nil, err
	}
	if stmt.CaseID != nil {
		return nil, errAlreadyPromoted
	}

	criteria := s.policy.Evaluate(stmt)
	if !isManualOverride && !criteria.MeetsThreshold {
		met := "none"
		if len(criteria.Reasons) > 0 {
			met = strings.Join(criteria.Reasons, "; ")
		}
		return nil, fmt.Errorf("40901:statement does not qualify for promotion: score %d/%d, criteria met: %s",
			criteria.Score, qualify.MinScore, met)
	}

	if promotionReason == "" {
		promotionReason = strings.Join(criteria.Reasons, "; ")
		if promotionReason == "" {
			promotionReason = "Manual promotion"
		}
	}

	now := time.Now()
	newCase := &model.Case{
		ID:                     uuid.NewString(),
		Title:                  promotionTitle(stmt),
		Summary:                promotionSummary(stmt),
		Description:            promotionDescription(stmt),
		CaseDate:               stmt.StatementDate,
		Status:                 model.CaseStatusDocumented,
		Visibility:             model.VisibilityPublic,
		QualificationScore:     criteria.Score,
		ResponseCount:          criteria.ResponseCount,
		MediaOutletCount:       criteria.MediaOutletCount,
		HasPublicReaction:      criteria.HasPublicReaction,
		HasRepercussion:        criteria.HasRepercussion,
		IsRealIncident:         true,
		PromotedAt:             &now,
		PromotedBy:             promotedBy,
		PromotionReason:        promotionReason,
		WasManuallyPromoted:    isManualOverride,
		OriginatingStatementID: &stmt.ID,
	}

	if err := s.applyPromotion(stmt, newCase, now); err != nil {
		return nil, err
	}

	audit.Dispatch(s.auditor, audit.Event{
		Actor:        promotedBy,
		Action:       audit.ActionPromote,
		ResourceType: audit.ResourceCase,
		ResourceID:   newCase.ID,
		Detail: model.JSONMap{
			"statement_id":    stmt.ID,
			"score":           criteria.Score,
			"manual_override": isManualOverride,
		},
	})
	if s.notifier != nil {
		go s.notifier.NotifyStatementPromoted(context.Background(), notify.StatementPromotedEvent{
			CaseID:      newCase.ID,
			CaseSlug:    newCase.Slug,
			CaseTitle:   newCase.Title,
			StatementID: stmt.ID,
			Score:       criteria.Score,
			PromotedBy:  promotedBy,
			Manual:      isManualOverride,
		})
	}

	return newCase, nil
}

// applyPromotion runs the three promotion writes in one transaction: the case
// insert, the optimistic claim of the originating statement, and the bulk
// linking of its response thread.
func (s *PromotionService) applyPromotion(stmt *model.Statement, newCase *model.Case, now time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, stmt.ID, now)
		if err != nil {
			return err
		}
		newCase.Slug = slug

		if err := tx.Create(newCase).Error; err != nil {
			return fmt.Errorf("create case: %w", err)
		}

		if stmt.Person != nil {
			if err := tx.Model(newCase).Association("People").Append(stmt.Person); err != nil {
				return fmt.Errorf("attach person: %w", err)
			}
		}
		if stmt.Organization != nil {
			if err := tx.Model(newCase).Association("Organizations").Append(stmt.Organization); err != nil {
				return fmt.Errorf("attach organization: %w", err)
			}
		}

		// Guard against a concurrent promotion: only claim the statement if
		// nothing else has. Zero rows means we lost the race; roll back so
		// no second case is left behind.
		res := tx.Model(&model.Statement{}).
			Where("id = ? AND case_id IS NULL", stmt.ID).
			Update("case_id", newCase.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyPromoted
		}

		// Link the direct response thread in one bulk update.
		if err := tx.Model(&model.Statement{}).
			Where("responds_to_id = ?", stmt.ID).
			Update("case_id", newCase.ID).Error; err != nil {
			return fmt.Errorf("link responses: %w", err)
		}
		return nil
	})
}

func promotionTitle(stmt *model.Statement) string {
	return fmt.Sprintf("%s: %s...", stmt.SpeakerName(), truncate(stmt.Content, 100))
}

func promotionSummary(stmt *model.Statement) string {
	if stmt.Summary != "" {
		return stmt.Summary
	}
	return truncate(stmt.Content, 200)
}

func promotionDescription(stmt *model.Statement) string {
	if stmt.Context != "" {
		return stmt.Context
	}
	return stmt.Content
}

// uniqueSlug builds "case-<unixts>-<id8>" and, under collision, retries with
// a short random suffix. Timestamp granularity alone is not collision-proof.
func uniqueSlug(tx *gorm.DB, statementID string, now time.Time) (string, error) {
	base := fmt.Sprintf("case-%d-%s", now.Unix(), truncate(statementID, 8))
	slug := base
	for i := 0; i < slugAttempts; i++ {
		var count int64
		if err := tx.Model(&model.Case{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + randomSuffix()
	}
	return "", fmt.Errorf("50001:could not generate a unique case slug")
}

func randomSuffix() string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%04x", time.Now().UnixNano()&0xffff)
	}
	return hex.EncodeToString(b)
}

// truncate cuts s to at most n runes so a multibyte character is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
