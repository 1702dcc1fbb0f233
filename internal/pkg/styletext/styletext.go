// Package styletext 는 본문 문자열 안에 삽입되는 스타일 표식을 다룬다.
// 표식은 STX/ETX 제어문자와 종류 문자 한 글자의 쌍으로, 일반 본문과
// 충돌하지 않는 인밴드 마커다. 렌더러는 문자열 검색 대신 Parse 가
// 돌려주는 런 목록만 보고 그린다.
package styletext

import "strings"

// Kind 스타일 종류
type Kind int

const (
	Provisional Kind = iota // 미확정 변수 — 편집자에게 빨간색으로 노출
	Resolved                // 데이터로 치환된 값 — 미리보기에서 파란색
	Muted                   // 보조 설명 — 회색 처리
)

const (
	stx = '\x02' // 스타일 시작 표식 접두
	etx = '\x03' // 스타일 종료 표식 접두
)

var kindChar = map[Kind]rune{
	Provisional: 'p',
	Resolved:    'r',
	Muted:       'm',
}

var charKind = map[rune]Kind{
	'p': Provisional,
	'r': Resolved,
	'm': Muted,
}

// Attr 런 하나의 렌더링 속성
type Attr struct {
	R, G, B uint8
	Bold    bool
	Italic  bool
}

// apply 는 종류별 속성을 기존 속성 위에 덮어쓴다.
// 색은 나중에 열린 스타일이 이기고, 굵기·기울임은 설정하는 스타일만 건드린다.
func (k Kind) apply(a Attr) Attr {
	switch k {
	case Provisional:
		a.R, a.G, a.B = 200, 30, 30
		a.Bold = true
	case Resolved:
		a.R, a.G, a.B = 20, 60, 160
	case Muted:
		a.R, a.G, a.B = 120, 120, 120
		a.Italic = true
	}
	return a
}

// Run 스타일이 동일하게 유지되는 본문 구간.
// Styles 는 열린 순서를 보존한다.
type Run struct {
	Text   string
	Styles []Kind
}

// Attr 런의 최종 렌더링 속성. 기본은 검정 일반체이며
// 활성 스타일을 열린 순서대로 적용한다.
func (r Run) Attr() Attr {
	return r.AttrOn(Attr{})
}

// AttrOn 주어진 기본 속성(제목부의 굵은 검정 등) 위에
// 활성 스타일을 열린 순서대로 적용한다.
func (r Run) AttrOn(base Attr) Attr {
	for _, k := range r.Styles {
		base = k.apply(base)
	}
	return base
}

// Wrap 문자열을 지정 스타일의 시작/종료 표식으로 감싼다.
func Wrap(kind Kind, s string) string {
	c := kindChar[kind]
	return string([]rune{stx, c}) + s + string([]rune{etx, c})
}

// Strip 모든 스타일 표식을 제거하고 순수 본문만 남긴다.
func Strip(s string) string {
	if !strings.ContainsRune(s, stx) && !strings.ContainsRune(s, etx) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if (runes[i] == stx || runes[i] == etx) && i+1 < len(runes) {
			if _, ok := charKind[runes[i+1]]; ok {
				i++
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Parse 표식이 섞인 문자열을 순서 있는 런 목록으로 분해한다.
// 스타일은 임의로 중첩될 수 있으며, 짝이 맞지 않는 종료 표식은 무시한다.
func Parse(s string) []Run {
	var runs []Run
	var active []Kind
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		// 스타일 없는 런의 Styles 는 nil 로 둔다
		var styles []Kind
		if len(active) > 0 {
			styles = make([]Kind, len(active))
			copy(styles, active)
		}
		runs = append(runs, Run{Text: buf.String(), Styles: styles})
		buf.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == stx || r == etx) && i+1 < len(runes) {
			kind, ok := charKind[runes[i+1]]
			if !ok {
				buf.WriteRune(r)
				continue
			}
			i++
			if r == stx {
				flush()
				active = append(active, kind)
				continue
			}
			// 종료 표식: 가장 최근에 열린 같은 종류를 닫는다
			for j := len(active) - 1; j >= 0; j-- {
				if active[j] == kind {
					flush()
					active = append(active[:j], active[j+1:]...)
					break
				}
			}
			continue
		}
		buf.WriteRune(r)
	}
	flush()
	return runs
}
