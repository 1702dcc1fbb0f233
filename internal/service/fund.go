package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/repository"
)

var (
	ErrFundNotFound   = errors.New("fund not found")
	ErrMemberNotFound = errors.New("fund member not found")
)

// CreateFundRequest 조합 등록 요청
type CreateFundRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=255"`
	RegistrationNo string     `json:"registration_no" binding:"max=100"`
	FormedAt       *time.Time `json:"formed_at"`
	Address        string     `json:"address" binding:"max=500"`
	UnitAmount     int64      `json:"unit_amount"`
}

// CreateMemberRequest 조합원 등록 요청
type CreateMemberRequest struct {
	FundID         uint   `json:"-"` // URL 파라미터에서 받는다
	Name           string `json:"name" binding:"required,min=1,max=255"`
	Role           string `json:"role" binding:"required,oneof=GP LP"`
	RegistrationNo string `json:"registration_no" binding:"max=100"`
	Address        string `json:"address" binding:"max=500"`
	Units          int64  `json:"units"`
	Amount         int64  `json:"amount"`
	SealName       string `json:"seal_name" binding:"max=255"`
	SortOrder      int    `json:"sort_order"`
}

// FundService 조합·조합원 명부 서비스
type FundService interface {
	Create(ctx context.Context, req CreateFundRequest) (*model.Fund, error)
	Get(ctx context.Context, id uint) (*model.Fund, error)
	List(ctx context.Context) ([]model.Fund, error)
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, req CreateMemberRequest) (*model.FundMember, error)
	ListMembers(ctx context.Context, fundID uint) ([]model.FundMember, error)
	RemoveMember(ctx context.Context, id uint) error
}

// fundService 구현
type fundService struct {
	fundRepo repository.FundRepository
}

// NewFundService 서비스 인스턴스 생성
func NewFundService(fundRepo repository.FundRepository) FundService {
	return &fundService{fundRepo: fundRepo}
}

// Create 조합 등록
func (s *fundService) Create(ctx context.Context, req CreateFundRequest) (*model.Fund, error) {
	fund := &model.Fund{
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		FormedAt:       req.FormedAt,
		Address:        req.Address,
		UnitAmount:     req.UnitAmount,
	}
	if err := s.fundRepo.Create(fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}
	return fund, nil
}

// Get 조합 조회 (조합원 명부 포함)
func (s *fundService) Get(ctx context.Context, id uint) (*model.Fund, error) {
	fund, err := s.fundRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFundNotFound
		}
		return nil, fmt.Errorf("failed to get fund: %w", err)
	}
	return fund, nil
}

// List 조합 목록
func (s *fundService) List(ctx context.Context) ([]model.Fund, error) {
	funds, err := s.fundRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	return funds, nil
}

// Delete 조합 삭제
func (s *fundService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.fundRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}
	return nil
}

// AddMember 조합원 등록
func (s *fundService) AddMember(ctx context.Context, req CreateMemberRequest) (*model.FundMember, error) {
	if _, err := s.Get(ctx, req.FundID); err != nil {
		return nil, err
	}
	member := &model.FundMember{
		FundID:         req.FundID,
		Name:           req.Name,
		Role:           req.Role,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
		Units:          req.Units,
		Amount:         req.Amount,
		SealName:       req.SealName,
		SortOrder:      req.SortOrder,
	}
	if err := s.fundRepo.CreateMember(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// ListMembers 조합원 명부 조회
func (s *fundService) ListMembers(ctx context.Context, fundID uint) ([]model.FundMember, error) {
	members, err := s.fundRepo.ListMembers(fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// RemoveMember 조합원 삭제
func (s *fundService) RemoveMember(ctx context.Context, id uint) error {
	if _, err := s.fundRepo.GetMember(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}
	if err := s.fundRepo.DeleteMember(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
