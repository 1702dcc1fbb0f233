package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/treediff"
	"github.com/fundops/backoffice/internal/repository"
	"k8s.io/klog/v2"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrVersionExists    = errors.New("template version already exists")
	ErrTypeMismatch     = errors.New("templates are not diffable: different types")
)

// CreateTemplateRequest 템플릿 버전 생성 요청
type CreateTemplateRequest struct {
	Type        string `json:"type" binding:"required,min=1,max=50"`
	FundID      *uint  `json:"fund_id"` // nil 이면 전역 범위
	Version     string `json:"version" binding:"required,min=1,max=50"`
	Content     string `json:"content" binding:"required"` // doctree.Content JSON
	Description string `json:"description" binding:"max=500"`
	Activate    bool   `json:"activate"`
}

// ScopeViolation 활성 버전 정합성 위반
type ScopeViolation struct {
	Type        string `json:"type"`
	FundID      *uint  `json:"fund_id"`
	ActiveCount int    `json:"active_count"`
}

// TemplateService 템플릿 버전 상태 기계.
// 버전은 생성 후 불변이고, 상태는 초안 → 활성 → 대체됨으로만 움직인다.
// (type, 범위) 마다 활성은 최대 하나라는 사후 조건을 지킨다.
type TemplateService interface {
	Create(ctx context.Context, req CreateTemplateRequest) (*model.DocumentTemplate, error)
	Get(ctx context.Context, id uint) (*model.DocumentTemplate, error)
	Activate(ctx context.Context, id uint) error
	ResolveActive(ctx context.Context, docType string, fundID *uint) (*model.DocumentTemplate, error)
	ListVersions(ctx context.Context, docType string, fundID *uint) ([]model.DocumentTemplate, error)
	Diff(ctx context.Context, oldID, newID uint) (*treediff.Result, error)
	// ReconcileActive "범위마다 활성 최대 하나" 사후 조건을 점검한다.
	// 활성 전환이 두 번의 비트랜잭션 쓰기라서 장애 시점에 따라
	// 활성이 둘이 되거나 하나도 남지 않을 수 있고,
	// 두 경우 모두 위반으로 보고해 수렴을 확인한다.
	ReconcileActive(ctx context.Context) ([]ScopeViolation, error)
}

// templateService 구현
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService 서비스 인스턴스 생성
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// Create 새 템플릿 버전을 만든다. (type, version, 범위) 가 이미 있으면
// 거부한다. activate 요청이면 생성의 일부로 활성 전환까지 수행한다.
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*model.DocumentTemplate, error) {
	if _, err := doctree.Parse(req.Content); err != nil {
		return nil, err
	}

	exists, err := s.templateRepo.Exists(req.Type, req.Version, req.FundID)
	if err != nil {
		return nil, fmt.Errorf("failed to check template version: %w", err)
	}
	if exists {
		return nil, ErrVersionExists
	}

	template := &model.DocumentTemplate{
		Type:        req.Type,
		FundID:      req.FundID,
		Version:     req.Version,
		Content:     req.Content,
		Description: req.Description,
		IsActive:    false,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	klog.V(6).Infof("[template.Create] 템플릿 버전 생성: type=%s version=%s fundID=%v", req.Type, req.Version, req.FundID)

	if req.Activate {
		if err := s.Activate(ctx, template.ID); err != nil {
			return nil, err
		}
		template.IsActive = true
	}
	return template, nil
}

// Get ID 로 템플릿 조회
func (s *templateService) Get(ctx context.Context, id uint) (*model.DocumentTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// Activate 대상 버전을 활성으로 전환한다.
// (type, 범위) 의 기존 활성을 비활성으로 쓴 뒤 대상을 활성으로 쓴다.
// 두 쓰기는 순차적이고 트랜잭션이 아니다. 중간 실패는 오류로 드러나며
// 호출자가 활성 전환을 다시 시도하면 수렴한다.
func (s *templateService) Activate(ctx context.Context, id uint) error {
	target, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.templateRepo.DeactivateScope(target.Type, target.FundID); err != nil {
		return fmt.Errorf("failed to deactivate scope: %w", err)
	}
	if err := s.templateRepo.MarkActive(target.ID); err != nil {
		// 기존 활성은 이미 내려갔을 수 있다. 오류를 그대로 드러내고
		// 호출자의 재시도에 맡긴다. 조용히 넘어가면 안 된다.
		return fmt.Errorf("failed to activate template %d (retry activation): %w", target.ID, err)
	}

	klog.V(6).Infof("[template.Activate] 활성 전환 완료: id=%d type=%s fundID=%v", target.ID, target.Type, target.FundID)
	return nil
}

// ResolveActive 조합 범위 활성 버전을 먼저 찾고, 없으면 전역 활성으로
// 내려간다. 둘 다 없으면 NotFound.
func (s *templateService) ResolveActive(ctx context.Context, docType string, fundID *uint) (*model.DocumentTemplate, error) {
	if fundID != nil {
		template, err := s.templateRepo.FindActive(docType, fundID)
		if err == nil {
			return template, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to find fund-scoped template: %w", err)
		}
	}
	template, err := s.templateRepo.FindActive(docType, nil)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find global template: %w", err)
	}
	return template, nil
}

// ListVersions (type, 범위) 의 버전 이력을 최신순으로 돌려준다
func (s *templateService) ListVersions(ctx context.Context, docType string, fundID *uint) ([]model.DocumentTemplate, error) {
	templates, err := s.templateRepo.ListVersions(docType, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return templates, nil
}

// Diff 두 버전의 본문 변경 내역을 계산한다. 문서 종류가 다르면
// 비교 대상이 아니므로 즉시 실패한다. 식별자·시각·활성 플래그·버전·
// 설명 같은 휘발성 필드는 본문에 없으므로 비교에서 자연히 빠진다.
func (s *templateService) Diff(ctx context.Context, oldID, newID uint) (*treediff.Result, error) {
	oldTpl, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newTpl, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}
	if oldTpl.Type != newTpl.Type {
		return nil, ErrTypeMismatch
	}

	oldContent, err := doctree.Parse(oldTpl.Content)
	if err != nil {
		return nil, err
	}
	newContent, err := doctree.Parse(newTpl.Content)
	if err != nil {
		return nil, err
	}
	return treediff.Diff(oldContent, newContent), nil
}

// ReconcileActive 범위별 활성 버전 수를 세어 위반을 보고한다.
// 활성이 둘 이상인 범위와, 버전은 있는데 활성이 하나도 없는 범위가
// 모두 위반이다.
func (s *templateService) ReconcileActive(ctx context.Context) ([]ScopeViolation, error) {
	scopes, err := s.templateRepo.ListScopes()
	if err != nil {
		return nil, fmt.Errorf("failed to list template scopes: %w", err)
	}
	active, err := s.templateRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active templates: %w", err)
	}

	type scopeKey struct {
		docType string
		fundID  uint
		global  bool
	}
	key := func(docType string, fundID *uint) scopeKey {
		k := scopeKey{docType: docType, global: fundID == nil}
		if fundID != nil {
			k.fundID = *fundID
		}
		return k
	}

	counts := map[scopeKey]int{}
	for i := range active {
		counts[key(active[i].Type, active[i].FundID)]++
	}

	var violations []ScopeViolation
	for _, sc := range scopes {
		if n := counts[key(sc.Type, sc.FundID)]; n != 1 {
			violations = append(violations, ScopeViolation{Type: sc.Type, FundID: sc.FundID, ActiveCount: n})
		}
	}
	if len(violations) > 0 {
		klog.Errorf("[template.ReconcileActive] 활성 버전 정합성 위반 %d건", len(violations))
	}
	return violations, nil
}
