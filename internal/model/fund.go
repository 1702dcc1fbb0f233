package model

import "time"

// 조합원 구분
const (
	RoleGP = "GP" // 업무집행조합원
	RoleLP = "LP" // 유한책임조합원
)

// Fund 투자조합 테이블
type Fund struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	Name           string       `json:"name" gorm:"size:255;not null"`
	RegistrationNo string       `json:"registration_no" gorm:"size:100"`
	FormedAt       *time.Time   `json:"formed_at"`
	Address        string       `json:"address" gorm:"size:500"`
	UnitAmount     int64        `json:"unit_amount" gorm:"default:0"` // 1좌당 금액(원)
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Members        []FundMember `json:"members,omitempty" gorm:"foreignKey:FundID"`
}

// TableName 지정 테이블명
func (Fund) TableName() string {
	return "funds"
}

// FundMember 조합원 명부 테이블
type FundMember struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FundID         uint      `json:"fund_id" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Role           string    `json:"role" gorm:"size:10;not null;default:LP"` // GP, LP
	RegistrationNo string    `json:"registration_no" gorm:"size:100"`         // 주민/법인등록번호
	Address        string    `json:"address" gorm:"size:500"`
	Units          int64     `json:"units" gorm:"default:0"`        // 출자좌수
	Amount         int64     `json:"amount" gorm:"default:0"`       // 출자금액(원)
	SealName       string    `json:"seal_name" gorm:"size:255"`     // 인감 명의
	SortOrder      int       `json:"sort_order" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 지정 테이블명
func (FundMember) TableName() string {
	return "fund_members"
}
