package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"gorm.io/gorm"
)

// ugcPolicy strips markup from user-submitted statement text. Statements are
// served back as plain text, so UGC sanitization happens once at write time.
var ugcPolicy = bluemonday.UGCPolicy()

type StatementService struct {
	db *gorm.DB
}

func NewStatementService(db *gorm.DB) *StatementService {
	return &StatementService{db: db}
}

type CreateStatementInput struct {
	Content        string
	Summary        string
	Context        string
	StatementDate  time.Time
	StatementType  string
	RespondsToID   *string
	PersonID       *string
	OrganizationID *string
}

func (s *StatementService) Create(in CreateStatementInput) (*model.Statement, error) {
	if in.StatementType == "" {
		in.StatementType = model.StatementTypeOriginal
	}
	if in.StatementType != model.StatementTypeOriginal && in.StatementType != model.StatementTypeResponse {
		return nil, fmt.Errorf("40001:invalid statement type %q", in.StatementType)
	}
	// A response must point at the statement it responds to.
	if in.StatementType == model.StatementTypeResponse && in.RespondsToID == nil {
		return nil, fmt.Errorf("40001:a RESPONSE statement requires responds_to_id")
	}
	if in.RespondsToID != nil {
		var parent model.Statement
		if err := s.db.First(&parent, "id = ?", *in.RespondsToID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("40401:responded-to statement not found")
			}
			return nil, err
		}
	}

	stmt := &model.Statement{
		ID:             uuid.NewString(),
		Content:        ugcPolicy.Sanitize(in.Content),
		Summary:        ugcPolicy.Sanitize(in.Summary),
		Context:        ugcPolicy.Sanitize(in.Context),
		StatementDate:  in.StatementDate,
		StatementType:  in.StatementType,
		RespondsToID:   in.RespondsToID,
		PersonID:       in.PersonID,
		OrganizationID: in.OrganizationID,
	}
	if err := s.db.Create(stmt).Error; err != nil {
		return nil, err
	}
	return s.GetByID(stmt.ID)
}

func (s *StatementService) GetByID(id string) (*model.Statement, error) {
	var stmt model.Statement
	err := s.db.Preload("Person").Preload("Organization").Preload("Case").
		Preload("Responses").Preload("Sources").
		Preload("RepercussionsAbout").Preload("RepercussionsCaused").
		First(&stmt, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:statement not found")
		}
		return nil, err
	}
	return &stmt, nil
}

func (s *StatementService) List(statementType, personID, caseID, keyword string, page, pageSize int) ([]model.Statement, int64, error) {
	query := s.db.Model(&model.Statement{})
	if statementType != "" {
		query = query.Where("statement_type = ?", statementType)
	}
	if personID != "" {
		query = query.Where("person_id = ?", personID)
	}
	if caseID != "" {
		query = query.Where("case_id = ?", caseID)
	}
	if keyword != "" {
		query = query.Where("content LIKE ?", "%"+keyword+"%")
	}

	var total int64
	query.Count(&total)

	var stmts []model.Statement
	if err := query.Preload("Person").Preload("Organization").
		Order("statement_date desc").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&stmts).Error; err != nil {
		return nil, 0, err
	}
	return stmts, total, nil
}

func (s *StatementService) ListResponses(id string) ([]model.Statement, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	var responses []model.Statement
	err := s.db.Preload("Person").Preload("Organization").
		Where("responds_to_id = ?", id).
		Order("statement_date asc").Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *StatementService) Update(id string, updates map[string]interface{}) (*model.Statement, error) {
	for _, field := range []string{"content", "summary", "context"} {
		if v, ok := updates[field].(string); ok {
			updates[field] = ugcPolicy.Sanitize(v)
		}
	}
	res := s.db.Model(&model.Statement{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("40401:statement not found")
	}
	return s.GetByID(id)
}

func (s *StatementService) Delete(id string) error {
	res := s.db.Delete(&model.Statement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("40401:statement not found")
	}
	return nil
}

func (s *StatementService) AddSource(statementID string, src *model.Source) (*model.Source, error) {
	if _, err := s.GetByID(statementID); err != nil {
		return nil, err
	}
	src.ID = uuid.NewString()
	src.StatementID = statementID
	if err := s.db.Create(src).Error; err != nil {
		return nil, err
	}
	return src, nil
}

func (s *StatementService) AddRepercussion(rep *model.Repercussion) (*model.Repercussion, error) {
	if rep.StatementAboutID == nil && rep.StatementCausedByID == nil {
		return nil, fmt.Errorf("40001:a repercussion must reference a statement")
	}
	for _, ref := range []*string{rep.StatementAboutID, rep.StatementCausedByID} {
		if ref == nil {
			continue
		}
		if _, err := s.GetByID(*ref); err != nil {
			return nil, err
		}
	}
	rep.ID = uuid.NewString()
	if rep.Type == "" {
		rep.Type = model.RepercussionOther
	}
	if err := s.db.Create(rep).Error; err != nil {
		return nil, err
	}
	return rep, nil
}
