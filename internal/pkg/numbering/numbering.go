// Package numbering 은 조문 깊이와 번호로부터 한국식 법률 문서의
// 번호 표기 문자열을 만드는 순수 함수들을 제공한다.
package numbering

import "fmt"

// 2단계(항) 번호에 쓰는 원문자. 20개를 넘으면 괄호 숫자로 대체한다.
var circled = []rune("①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮⑯⑰⑱⑲⑳")

// 4단계(목) 번호에 쓰는 한글 자모 순서. 14개를 넘으면 대괄호 숫자로 대체한다.
var jamo = []rune("가나다라마바사아자차카타파하")

// Format 은 (깊이, 번호) 를 본문 렌더링용 번호 문자열로 바꾼다.
// 번호가 음수이면 번호 표기를 생략하는 조항이므로 빈 문자열을 돌려준다.
//
//	깊이 0: 제N장
//	깊이 1: 제N조
//	깊이 2: ①…⑳, 넘치면 (N)
//	깊이 3: N.
//	깊이 4: 가.…하., 넘치면 [N]
//	그 외: N)
func Format(depth, ordinal int) string {
	if ordinal < 0 {
		return ""
	}
	switch depth {
	case 0:
		return fmt.Sprintf("제%d장", ordinal)
	case 1:
		return fmt.Sprintf("제%d조", ordinal)
	case 2:
		if ordinal >= 1 && ordinal <= len(circled) {
			return string(circled[ordinal-1])
		}
		return fmt.Sprintf("(%d)", ordinal)
	case 3:
		return fmt.Sprintf("%d.", ordinal)
	case 4:
		if ordinal >= 1 && ordinal <= len(jamo) {
			return string(jamo[ordinal-1]) + "."
		}
		return fmt.Sprintf("[%d]", ordinal)
	default:
		return fmt.Sprintf("%d)", ordinal)
	}
}

// Citation 은 (깊이, 번호) 를 변경 내역 표시용 법률 인용 표기로 바꾼다.
// Format 과 달리 항·호·목도 "제N항" 식으로 읽을 수 있게 만든다.
func Citation(depth, ordinal int) string {
	if ordinal < 0 {
		return ""
	}
	switch depth {
	case 0:
		return fmt.Sprintf("제%d장", ordinal)
	case 1:
		return fmt.Sprintf("제%d조", ordinal)
	case 2:
		return fmt.Sprintf("제%d항", ordinal)
	case 3:
		return fmt.Sprintf("제%d호", ordinal)
	case 4:
		return fmt.Sprintf("제%d목", ordinal)
	default:
		return fmt.Sprintf("%d)", ordinal)
	}
}
