package service

import (
	"fmt"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"gorm.io/gorm"
)

type CaseService struct {
	db *gorm.DB
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{db: db}
}

// List returns cases filtered for the public surface. Admin callers pass
// includeHidden=true to see private and draft cases as well.
func (s *CaseService) List(status string, realOnly, includeHidden bool, page, pageSize int) ([]model.Case, int64, error) {
	query := s.db.Model(&model.Case{})
	if !includeHidden {
		query = query.Where("visibility = ?", model.VisibilityPublic)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if realOnly {
		query = query.Where("is_real_incident = ?", true)
	}

	var total int64
	query.Count(&total)

	var cases []model.Case
	if err := query.Order("case_date desc").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (s *CaseService) GetBySlug(slug string) (*model.Case, error) {
	var cs model.Case
	err := s.db.Preload("Statements.Person").Preload("Statements.Organization").
		Preload("People").Preload("Organizations").
		First(&cs, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:case not found")
		}
		return nil, err
	}
	return &cs, nil
}

func (s *CaseService) GetByID(id string) (*model.Case, error) {
	var cs model.Case
	err := s.db.Preload("People").Preload("Organizations").First(&cs, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:case not found")
		}
		return nil, err
	}
	return &cs, nil
}

func (s *CaseService) Update(id string, updates map[string]interface{}) (*model.Case, error) {
	if v, ok := updates["status"].(string); ok {
		switch v {
		case model.CaseStatusDocumented, model.CaseStatusDeveloping, model.CaseStatusClosed:
		default:
			return nil, fmt.Errorf("40001:invalid case status %q", v)
		}
	}
	if v, ok := updates["visibility"].(string); ok {
		switch v {
		case model.VisibilityPublic, model.VisibilityPrivate, model.VisibilityDraft:
		default:
			return nil, fmt.Errorf("40001:invalid visibility %q", v)
		}
	}
	res := s.db.Model(&model.Case{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("40401:case not found")
	}
	return s.GetByID(id)
}
