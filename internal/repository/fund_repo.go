package repository

import (
	"errors"

	"github.com/fundops/backoffice/internal/model"
	"gorm.io/gorm"
)

// fundRepository 구현
type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository Repository 인스턴스 생성
func NewFundRepository(db *gorm.DB) FundRepository {
	return &fundRepository{db: db}
}

// Create 조합 생성
func (r *fundRepository) Create(fund *model.Fund) error {
	return r.db.Create(fund).Error
}

// Get 조합 조회 (조합원 명부 포함)
func (r *fundRepository) Get(id uint) (*model.Fund, error) {
	var fund model.Fund
	result := r.db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&fund, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &fund, nil
}

// List 조합 목록
func (r *fundRepository) List() ([]model.Fund, error) {
	var funds []model.Fund
	result := r.db.Order("id ASC").Find(&funds)
	return funds, result.Error
}

// Save 조합 저장
func (r *fundRepository) Save(fund *model.Fund) error {
	return r.db.Save(fund).Error
}

// Delete 조합 삭제 (조합원 명부 포함)
func (r *fundRepository) Delete(id uint) error {
	if err := r.db.Where("fund_id = ?", id).
		Delete(&model.FundMember{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Fund{}, id).Error
}

// CreateMember 조합원 추가
func (r *fundRepository) CreateMember(member *model.FundMember) error {
	return r.db.Create(member).Error
}

// GetMember 조합원 조회
func (r *fundRepository) GetMember(id uint) (*model.FundMember, error) {
	var member model.FundMember
	result := r.db.First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &member, nil
}

// ListMembers 조합원 명부 조회
func (r *fundRepository) ListMembers(fundID uint) ([]model.FundMember, error) {
	var members []model.FundMember
	result := r.db.Where("fund_id = ?", fundID).
		Order("sort_order ASC, id ASC").
		Find(&members)
	return members, result.Error
}

// SaveMember 조합원 저장
func (r *fundRepository) SaveMember(member *model.FundMember) error {
	return r.db.Save(member).Error
}

// DeleteMember 조합원 삭제
func (r *fundRepository) DeleteMember(id uint) error {
	return r.db.Delete(&model.FundMember{}, id).Error
}
