// Package doctree 는 법률 문서 템플릿의 조문 트리 구조를 정의한다.
// 템플릿 본문은 Content 를 JSON 으로 직렬화한 문자열로 저장된다.
package doctree

import (
	"encoding/json"
	"fmt"
)

// SectionKind 조문 노드 종류
type SectionKind string

const (
	KindPlain SectionKind = "plain" // 일반 조문
	KindTable SectionKind = "table" // 표 조문
)

// RenderKind 별지 렌더링 방식
type RenderKind string

const (
	RenderRepeating    RenderKind = "repeating-page" // 조합원별 반복 페이지
	RenderSingleSample RenderKind = "single-sample"  // 공란 서식 1부
)

// EntityFilter 별지 대상 조합원 필터
type EntityFilter string

const (
	FilterAll    EntityFilter = "all"
	FilterGPOnly EntityFilter = "gp-only"
	FilterLPOnly EntityFilter = "lp-only"
)

// Content 템플릿 본문 전체. 조문 트리와 별지 목록으로 구성된다.
type Content struct {
	Sections   []Section            `json:"sections"`
	Appendices []AppendixDefinition `json:"appendices,omitempty"`
}

// Section 조문 트리 노드.
// Ordinal 은 의미상의 번호이며 형제간 배열 인덱스와 무관하다.
// 음수 Ordinal 은 번호 표기를 생략하는 부칙성 조항을 뜻한다.
type Section struct {
	Ordinal  int          `json:"ordinal"`
	Title    string       `json:"title,omitempty"`
	Text     string       `json:"text,omitempty"`
	Kind     SectionKind  `json:"kind,omitempty"`
	Table    *TableConfig `json:"table,omitempty"`
	Children []Section    `json:"children,omitempty"`
}

// TableConfig 표 조문 설정.
// ColumnRatios 는 상대 비율로, 실제 폭은 본문 폭에 맞춰 비례 배분된다.
type TableConfig struct {
	Headers      []string  `json:"headers"`
	ColumnRatios []float64 `json:"columnRatios"`
	RowsKey      string    `json:"rowsKey"`              // 컨텍스트에서 행 데이터를 찾는 키
	SumColumns   []int     `json:"sumColumns,omitempty"` // 합계를 계산할 열 인덱스
	TotalLabel   string    `json:"totalLabel,omitempty"` // 합계 행 첫 칸 라벨
}

// AppendixDefinition 별지 정의
type AppendixDefinition struct {
	Title          string          `json:"title"`
	RenderKind     RenderKind      `json:"renderKind"`
	EntityFilter   EntityFilter    `json:"entityFilter,omitempty"`
	Fields         []AppendixField `json:"fields"`
	ExternalRef    string          `json:"externalRef,omitempty"`    // 공용 서식 템플릿 타입 참조
	PagesPerEntity int             `json:"pagesPerEntity,omitempty"` // 0 이면 1
}

// AppendixField 별지 항목 한 줄
type AppendixField struct {
	Label        string `json:"label"`
	Expr         string `json:"expr"` // ${...} 변수식
	RequiresSeal bool   `json:"requiresSeal,omitempty"`
	Condition    string `json:"condition,omitempty"` // 컨텍스트 키. 값이 비면 항목 생략
}

// Parse 저장된 JSON 본문을 Content 로 복원한다.
func Parse(raw string) (*Content, error) {
	var content Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("템플릿 본문 파싱 실패: %w", err)
	}
	return &content, nil
}

// Marshal Content 를 저장용 JSON 문자열로 직렬화한다.
func Marshal(content *Content) (string, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("템플릿 본문 직렬화 실패: %w", err)
	}
	return string(data), nil
}

// SectionAt 구조 경로(각 깊이의 배열 인덱스)로 조문 노드를 찾는다.
// 경로가 트리를 벗어나면 nil 을 돌려준다.
func (c *Content) SectionAt(path []int) *Section {
	if len(path) == 0 {
		return nil
	}
	siblings := c.Sections
	var node *Section
	for _, idx := range path {
		if idx < 0 || idx >= len(siblings) {
			return nil
		}
		node = &siblings[idx]
		siblings = node.Children
	}
	return node
}
