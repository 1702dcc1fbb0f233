package treediff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fundops/backoffice/internal/pkg/doctree"
)

func chapter(ordinal int, title string, children ...doctree.Section) doctree.Section {
	return doctree.Section{Ordinal: ordinal, Title: title, Children: children}
}

func article(ordinal int, title, text string) doctree.Section {
	return doctree.Section{Ordinal: ordinal, Title: title, Text: text}
}

func TestDiffIdentical(t *testing.T) {
	content := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "조합의 명칭"), article(2, "목적", "투자")),
	}}
	result := Diff(content, content)
	if len(result.Changes) != 0 {
		t.Fatalf("동일 트리 비교는 빈 결과여야 함: %+v", result.Changes)
	}
}

func TestDiffModifiedAndAdded(t *testing.T) {
	oldContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(3, "존속기간", "조합의 존속기간은 5년으로 한다.")),
	}}
	newContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙",
			article(3, "존속기간", "조합의 존속기간은 7년으로 한다."),
			article(4, "해산", "조합은 총회 결의로 해산한다."),
		),
	}}

	result := Diff(oldContent, newContent)
	if result.Summary[Modified] != 1 || result.Summary[Added] != 1 || result.Summary[Removed] != 0 {
		t.Fatalf("summary = %v", result.Summary)
	}

	var modified, added *Change
	for i := range result.Changes {
		switch result.Changes[i].Kind {
		case Modified:
			modified = &result.Changes[i]
		case Added:
			added = &result.Changes[i]
		}
	}
	if modified == nil || added == nil {
		t.Fatalf("changes = %+v", result.Changes)
	}
	if modified.DisplayPath != "제1장 제3조" {
		t.Errorf("modified.DisplayPath = %q", modified.DisplayPath)
	}
	if diff := cmp.Diff([]int{0, 0}, modified.Path); diff != "" {
		t.Errorf("modified.Path mismatch (-want +got):\n%s", diff)
	}
	if modified.OldValue != "조합의 존속기간은 5년으로 한다." {
		t.Errorf("modified.OldValue = %q", modified.OldValue)
	}
	if added.DisplayPath != "제1장 제4조" {
		t.Errorf("added.DisplayPath = %q", added.DisplayPath)
	}
	if added.OldValue != placeholderNone {
		t.Errorf("added.OldValue = %q", added.OldValue)
	}
}

func TestDiffReorderNotReported(t *testing.T) {
	// 번호 기반 짝 맞추기: 순서만 바뀐 형제는 변경이 아니다
	oldContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "A"), article(2, "목적", "B")),
	}}
	newContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(2, "목적", "B"), article(1, "명칭", "A")),
	}}
	result := Diff(oldContent, newContent)
	if len(result.Changes) != 0 {
		t.Fatalf("순서 변경은 보고하지 않아야 함: %+v", result.Changes)
	}
}

func TestDiffRemovalSymmetry(t *testing.T) {
	a := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "A")),
	}}
	b := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "A"), article(2, "목적", "B")),
	}}
	forward := Diff(a, b)
	backward := Diff(b, a)
	if forward.Summary[Added] != backward.Summary[Removed] {
		t.Errorf("added %d != reverse removed %d", forward.Summary[Added], backward.Summary[Removed])
	}
}

func TestDiffEmptyVersusAbsent(t *testing.T) {
	oldContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "본문 있음")),
	}}
	newContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "")),
	}}
	result := Diff(oldContent, newContent)
	if len(result.Changes) != 1 {
		t.Fatalf("changes = %+v", result.Changes)
	}
	if result.Changes[0].NewValue != placeholderEmpty {
		t.Errorf("빈 문자열은 자리표시자로: %q", result.Changes[0].NewValue)
	}
}

func TestDiffTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("가", maxDisplayLen+50)
	oldContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", "짧음")),
	}}
	newContent := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙", article(1, "명칭", long)),
	}}
	result := Diff(oldContent, newContent)
	if len(result.Changes) != 1 {
		t.Fatalf("changes = %+v", result.Changes)
	}
	got := result.Changes[0].NewValue
	if !strings.Contains(got, "생략") {
		t.Errorf("생략 표시가 없음: %q", got)
	}
	if len([]rune(got)) >= len([]rune(long)) {
		t.Errorf("값이 잘리지 않음 (len %d)", len([]rune(got)))
	}
}

func TestDiffAppendixByTitle(t *testing.T) {
	oldContent := &doctree.Content{Appendices: []doctree.AppendixDefinition{
		{Title: "동의서", RenderKind: doctree.RenderRepeating, EntityFilter: doctree.FilterLPOnly,
			Fields: []doctree.AppendixField{{Label: "성명", Expr: "${member.name}"}}},
	}}
	newContent := &doctree.Content{Appendices: []doctree.AppendixDefinition{
		{Title: "동의서", RenderKind: doctree.RenderRepeating, EntityFilter: doctree.FilterAll,
			Fields: []doctree.AppendixField{{Label: "성명", Expr: "${member.name}"}}},
		{Title: "영수증", RenderKind: doctree.RenderSingleSample},
	}}
	result := Diff(oldContent, newContent)
	if result.Summary[Modified] != 1 || result.Summary[Added] != 1 {
		t.Fatalf("summary = %v, changes = %+v", result.Summary, result.Changes)
	}
	for _, c := range result.Changes {
		if !strings.HasPrefix(c.DisplayPath, "[별지 ") {
			t.Errorf("별지 변경 경로에 접두가 없음: %q", c.DisplayPath)
		}
	}
}

func TestCitationPath(t *testing.T) {
	content := &doctree.Content{Sections: []doctree.Section{
		chapter(1, "총칙",
			doctree.Section{Ordinal: 7, Title: "출자", Children: []doctree.Section{
				{Ordinal: 2, Text: "항 본문"},
			}},
		),
	}}
	if got := CitationPath(content, []int{0, 0, 0}); got != "제1장 제7조 제2항" {
		t.Errorf("CitationPath = %q", got)
	}
	// 번호 없는 부칙성 노드는 인용에서 제외된다
	content.Sections[0].Children[0].Children[0].Ordinal = -1
	if got := CitationPath(content, []int{0, 0, 0}); got != "제1장 제7조" {
		t.Errorf("음수 번호 제외 실패: %q", got)
	}
	if got := CitationPath(content, []int{0, 9}); !strings.Contains(got, "(10번째)") {
		t.Errorf("범위 밖 경로 표기: %q", got)
	}
}
