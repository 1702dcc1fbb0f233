package repository

import (
	"errors"

	"github.com/fundops/backoffice/internal/model"
	"gorm.io/gorm"
)

// templateRepository 구현
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository Repository 인스턴스 생성
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// scopeQuery (type, 범위) 조건을 만든다. fundID 가 nil 이면 전역 범위.
func (r *templateRepository) scopeQuery(docType string, fundID *uint) *gorm.DB {
	q := r.db.Where("type = ?", docType)
	if fundID == nil {
		return q.Where("fund_id IS NULL")
	}
	return q.Where("fund_id = ?", *fundID)
}

// Create 템플릿 버전 생성
func (r *templateRepository) Create(template *model.DocumentTemplate) error {
	return r.db.Create(template).Error
}

// GetByID ID 로 템플릿 조회
func (r *templateRepository) GetByID(id uint) (*model.DocumentTemplate, error) {
	var template model.DocumentTemplate
	result := r.db.First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Exists (type, version, 범위) 조합의 존재 여부
func (r *templateRepository) Exists(docType, version string, fundID *uint) (bool, error) {
	var count int64
	err := r.scopeQuery(docType, fundID).
		Model(&model.DocumentTemplate{}).
		Where("version = ?", version).
		Count(&count).Error
	return count > 0, err
}

// FindActive (type, 범위) 의 활성 버전 조회
func (r *templateRepository) FindActive(docType string, fundID *uint) (*model.DocumentTemplate, error) {
	var template model.DocumentTemplate
	result := r.scopeQuery(docType, fundID).
		Where("is_active = ?", true).
		First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// ListVersions (type, 범위) 의 모든 버전을 생성 시각 내림차순으로 조회
func (r *templateRepository) ListVersions(docType string, fundID *uint) ([]model.DocumentTemplate, error) {
	var templates []model.DocumentTemplate
	result := r.scopeQuery(docType, fundID).
		Order("created_at DESC, id DESC").
		Find(&templates)
	return templates, result.Error
}

// ListActive 모든 범위의 활성 버전 조회 (정합성 점검용)
func (r *templateRepository) ListActive() ([]model.DocumentTemplate, error) {
	var templates []model.DocumentTemplate
	result := r.db.Where("is_active = ?", true).Find(&templates)
	return templates, result.Error
}

// ListScopes 버전이 존재하는 (type, 범위) 조합 조회 (정합성 점검용)
func (r *templateRepository) ListScopes() ([]model.TemplateScope, error) {
	var scopes []model.TemplateScope
	result := r.db.Model(&model.DocumentTemplate{}).
		Distinct("type", "fund_id").
		Find(&scopes)
	return scopes, result.Error
}

// DeactivateScope (type, 범위) 의 활성 행을 모두 비활성으로 쓴다
func (r *templateRepository) DeactivateScope(docType string, fundID *uint) error {
	return r.scopeQuery(docType, fundID).
		Model(&model.DocumentTemplate{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// MarkActive 대상 한 건을 활성으로 쓴다
func (r *templateRepository) MarkActive(id uint) error {
	result := r.db.Model(&model.DocumentTemplate{}).
		Where("id = ?", id).
		Update("is_active", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
