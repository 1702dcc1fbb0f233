package model

import "time"

// 문서 종류
const (
	DocTypeAgreement = "agreement" // 조합 규약
	DocTypeMinutes   = "minutes"   // 총회 의사록
	DocTypeConsent   = "consent"   // 서면 동의서
	DocTypeReceipt   = "receipt"   // 출자금 영수증
)

// DocumentTemplate 문서 템플릿 버전 테이블.
// 한 버전은 생성 후 불변이며, 수정은 항상 새 버전 생성으로 이뤄진다.
// (Type, 범위) 조합마다 활성 버전은 최대 하나이고,
// 조합 범위 템플릿이 전역 템플릿보다 우선한다.
type DocumentTemplate struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:50;not null;index:idx_tpl_scope"`
	FundID      *uint     `json:"fund_id" gorm:"index:idx_tpl_scope"` // nil 이면 전역 범위
	Version     string    `json:"version" gorm:"size:50;not null"`
	Content     string    `json:"content" gorm:"type:text"` // doctree.Content JSON
	IsActive    bool      `json:"is_active" gorm:"default:false;index:idx_tpl_scope"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 지정 테이블명
func (DocumentTemplate) TableName() string {
	return "document_templates"
}

// GlobalScope 전역 범위 여부
func (t *DocumentTemplate) GlobalScope() bool {
	return t.FundID == nil
}

// TemplateScope 버전이 하나라도 있는 (Type, 범위) 조합
type TemplateScope struct {
	Type   string `json:"type"`
	FundID *uint  `json:"fund_id"` // nil 이면 전역 범위
}
