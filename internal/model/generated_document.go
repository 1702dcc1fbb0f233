package model

import (
	"encoding/json"
	"time"
)

// PageMapEntry 결합 문서 안에서 조합원 한 명이 차지하는 페이지 범위
type PageMapEntry struct {
	MemberID   uint   `json:"memberId"`
	MemberName string `json:"memberName"`
	StartPage  int    `json:"startPage"` // 1부터 시작
	PageCount  int    `json:"pageCount"`
}

// GeneratedDocument 생성 문서 테이블.
// 결합 문서(부모)는 저장 시점에 조판된 산출물과 페이지 맵을 갖는다.
// 조합원별 문서(자식)는 같은 시점에 메타데이터 행으로만 만들어지고,
// 최초 조회 때 페이지 추출로 산출물을 지연 생성해 경로를 기억해 둔다.
type GeneratedDocument struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	FundID            uint      `json:"fund_id" gorm:"index;not null"`
	Type              string    `json:"type" gorm:"size:50;not null"`
	Title             string    `json:"title" gorm:"size:255"`
	ProcessedContent  string    `json:"processed_content" gorm:"type:text"`  // 사용자가 편집한 본문(안건 등)
	GenerationContext string    `json:"generation_context" gorm:"type:text"` // 생성 시점 컨텍스트 스냅샷 JSON
	TemplateID        uint      `json:"template_id" gorm:"index"`
	TemplateVersion   string    `json:"template_version" gorm:"size:50"`
	ArtifactPath      string    `json:"artifact_path" gorm:"size:500"`
	IsCombinedParent  bool      `json:"is_combined_parent" gorm:"default:false"`
	ParentDocumentID  *uint     `json:"parent_document_id" gorm:"index"`
	MemberID          *uint     `json:"member_id" gorm:"index"`
	MemberName        string    `json:"member_name" gorm:"size:255"`
	PageNumberMap     string    `json:"page_number_map" gorm:"type:text"`    // 부모 행에만 저장되는 JSON
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName 지정 테이블명
func (GeneratedDocument) TableName() string {
	return "generated_documents"
}

// PageMap 저장된 페이지 맵 JSON 을 복원한다.
func (d *GeneratedDocument) PageMap() ([]PageMapEntry, error) {
	if d.PageNumberMap == "" {
		return nil, nil
	}
	var entries []PageMapEntry
	if err := json.Unmarshal([]byte(d.PageNumberMap), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetPageMap 페이지 맵을 JSON 으로 직렬화해 저장 필드에 넣는다.
func (d *GeneratedDocument) SetPageMap(entries []PageMapEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	d.PageNumberMap = string(data)
	return nil
}
