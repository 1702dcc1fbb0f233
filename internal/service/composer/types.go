package composer

import (
	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/vars"
)

// Member 조판 대상 조합원. 저장 모델과 분리된 불변 스냅샷으로,
// Fields 에는 변수 치환에 쓰는 "member.XXX" 키가 채워져 있다.
type Member struct {
	ID     uint
	Name   string
	Role   string // GP, LP
	Fields map[string]string
}

// Context 조판 한 번에 쓰이는 읽기 전용 입력.
// 조판 엔진은 DB 를 직접 조회하지 않고 이 값만 본다.
// 반복 페이지의 "현재 조합원"도 전역 상태가 아니라
// 호출마다 병합된 컨텍스트로 전달된다.
type Context struct {
	Values  map[string]string     // 조합 사실관계, 일자 등 평면 키-값
	Members []Member              // 조합원 명부
	Tables  map[string][][]string // 표 조문의 행 데이터 (RowsKey 로 조회)
}

// Options 조판 옵션
type Options struct {
	Title   string // 문서 제목. 비어 있으면 제목부 생략
	Preview bool   // 미리보기: 치환값·미확정값 색상 표식 유지

	// ExternalContent 별지의 공용 서식 참조(ExternalRef)를 풀어 주는
	// 콜백. nil 이면 참조를 무시한다.
	ExternalContent func(ref string) (*doctree.Content, error)
}

func (o Options) varOpts(sample bool) vars.Options {
	return vars.Options{Preview: o.Preview && !sample, Sample: sample}
}

// Result 조판 결과
type Result struct {
	PDF       []byte
	PageMap   []model.PageMapEntry // 반복 별지의 조합원별 페이지 범위
	PageCount int
}
