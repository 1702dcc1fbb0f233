// Package vars 는 템플릿 본문의 ${이름} 변수를 컨텍스트 값으로 치환한다.
package vars

import (
	"regexp"

	"github.com/fundops/backoffice/internal/pkg/styletext"
)

var tokenPattern = regexp.MustCompile(`\$\{([^${}]+)\}`)

// Options 치환 동작 설정
type Options struct {
	Preview bool // 미리보기: 치환된 값을 파란색 표식으로 감싼다
	Sample  bool // 공란 서식: 미해결 변수를 표식 없이 빈 값으로 처리한다
}

// Resolve 본문 안의 ${이름} 토큰을 컨텍스트 값으로 치환한다.
// 값이 없거나 비어 있으면 토큰을 그대로 남기고 미확정 표식으로 감싸
// 편집자 눈에 띄게 한다. 공란 서식 모드에서는 표식 없이 비워 둔다.
func Resolve(text string, ctx map[string]string, opt Options) string {
	if text == "" {
		return ""
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[2 : len(token)-1]
		value, ok := ctx[name]
		if !ok || value == "" {
			if opt.Sample {
				return ""
			}
			return styletext.Wrap(styletext.Provisional, token)
		}
		if opt.Preview {
			return styletext.Wrap(styletext.Resolved, value)
		}
		return value
	})
}

// MarkValue ${} 를 거치지 않고 직접 계산된 값(표 칸, 합계 등)을
// 미리보기 모드에서 치환값 표식으로 감싼다.
func MarkValue(value string, opt Options) string {
	if value == "" || !opt.Preview {
		return value
	}
	return styletext.Wrap(styletext.Resolved, value)
}

// Tokens 본문에 등장하는 변수 이름 목록을 등장 순서대로 돌려준다.
func Tokens(text string) []string {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
