package repository

import (
	"errors"

	"github.com/fundops/backoffice/internal/model"
	"gorm.io/gorm"
)

// documentRepository 구현
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository Repository 인스턴스 생성
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create 생성 문서 행 추가
func (r *documentRepository) Create(doc *model.GeneratedDocument) error {
	return r.db.Create(doc).Error
}

// Get ID 로 조회
func (r *documentRepository) Get(id uint) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	result := r.db.First(&doc, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &doc, nil
}

// Save 저장 (추출 경로 기억 등)
func (r *documentRepository) Save(doc *model.GeneratedDocument) error {
	return r.db.Save(doc).Error
}

// ListByFund 조합의 부모 문서 목록 (최신순)
func (r *documentRepository) ListByFund(fundID uint) ([]model.GeneratedDocument, error) {
	var docs []model.GeneratedDocument
	result := r.db.Where("fund_id = ? AND parent_document_id IS NULL", fundID).
		Order("created_at DESC, id DESC").
		Find(&docs)
	return docs, result.Error
}

// GetChildren 부모에 딸린 조합원별 문서 행
func (r *documentRepository) GetChildren(parentID uint) ([]model.GeneratedDocument, error) {
	var docs []model.GeneratedDocument
	result := r.db.Where("parent_document_id = ?", parentID).
		Order("member_name ASC, id ASC").
		Find(&docs)
	return docs, result.Error
}

// GetChildByMember 부모+조합원으로 자식 행 조회
func (r *documentRepository) GetChildByMember(parentID, memberID uint) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	result := r.db.Where("parent_document_id = ? AND member_id = ?", parentID, memberID).
		First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &doc, nil
}

// Delete 문서 행 삭제 (자식 포함)
func (r *documentRepository) Delete(id uint) error {
	if err := r.db.Where("parent_document_id = ?", id).
		Delete(&model.GeneratedDocument{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.GeneratedDocument{}, id).Error
}
