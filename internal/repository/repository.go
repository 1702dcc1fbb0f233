package repository

import (
	"errors"

	"github.com/fundops/backoffice/internal/model"
)

// ErrNotFound 레코드 없음 오류
var ErrNotFound = errors.New("record not found")

// TemplateRepository 문서 템플릿 저장소 인터페이스.
// 범위(fundID)가 nil 이면 전역 템플릿을 뜻한다.
type TemplateRepository interface {
	Create(template *model.DocumentTemplate) error
	GetByID(id uint) (*model.DocumentTemplate, error)
	Exists(docType, version string, fundID *uint) (bool, error)
	FindActive(docType string, fundID *uint) (*model.DocumentTemplate, error)
	ListVersions(docType string, fundID *uint) ([]model.DocumentTemplate, error)
	ListActive() ([]model.DocumentTemplate, error)
	// ListScopes 버전이 하나라도 있는 (type, 범위) 조합을 모두 돌려준다.
	ListScopes() ([]model.TemplateScope, error)
	// DeactivateScope (type, 범위) 의 활성 행들을 비활성으로 쓴다.
	DeactivateScope(docType string, fundID *uint) error
	// MarkActive 대상 한 건을 활성으로 쓴다. DeactivateScope 와 함께
	// 순차 2회 쓰기로 활성 전환을 이룬다. 트랜잭션 보장은 없다.
	MarkActive(id uint) error
}

// DocumentRepository 생성 문서 저장소 인터페이스
type DocumentRepository interface {
	Create(doc *model.GeneratedDocument) error
	Get(id uint) (*model.GeneratedDocument, error)
	Save(doc *model.GeneratedDocument) error
	ListByFund(fundID uint) ([]model.GeneratedDocument, error)
	GetChildren(parentID uint) ([]model.GeneratedDocument, error)
	GetChildByMember(parentID, memberID uint) (*model.GeneratedDocument, error)
	Delete(id uint) error
}

// FundRepository 조합·조합원 저장소 인터페이스
type FundRepository interface {
	Create(fund *model.Fund) error
	Get(id uint) (*model.Fund, error)
	List() ([]model.Fund, error)
	Save(fund *model.Fund) error
	Delete(id uint) error

	CreateMember(member *model.FundMember) error
	GetMember(id uint) (*model.FundMember, error)
	ListMembers(fundID uint) ([]model.FundMember, error)
	SaveMember(member *model.FundMember) error
	DeleteMember(id uint) error
}
