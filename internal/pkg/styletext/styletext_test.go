package styletext

import (
	"reflect"
	"testing"
)

func TestWrapStripRoundTrip(t *testing.T) {
	original := "조합의 명칭은 변경할 수 있다"
	wrapped := Wrap(Provisional, original)
	if wrapped == original {
		t.Fatalf("Wrap 결과가 원본과 같음: %q", wrapped)
	}
	if got := Strip(wrapped); got != original {
		t.Errorf("Strip(Wrap(s)) = %q, want %q", got, original)
	}
}

func TestStripPlainTextUnchanged(t *testing.T) {
	s := "표식 없는 일반 본문"
	if got := Strip(s); got != s {
		t.Errorf("Strip(%q) = %q", s, got)
	}
}

func TestParsePlainText(t *testing.T) {
	runs := Parse("본문")
	if len(runs) != 1 || runs[0].Text != "본문" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if runs[0].Styles != nil {
		t.Errorf("스타일 없는 런의 Styles = %#v, want nil", runs[0].Styles)
	}
}

func TestParseSingleStyle(t *testing.T) {
	runs := Parse("앞 " + Wrap(Resolved, "값") + " 뒤")
	want := []Run{
		{Text: "앞 "},
		{Text: "값", Styles: []Kind{Resolved}},
		{Text: " 뒤"},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs = %+v, want %+v", runs, want)
	}
}

func TestParseNestedStyles(t *testing.T) {
	inner := Wrap(Provisional, "미확정")
	runs := Parse(Wrap(Muted, "보조 "+inner))
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2: %+v", len(runs), runs)
	}
	if !reflect.DeepEqual(runs[0].Styles, []Kind{Muted}) {
		t.Errorf("runs[0].Styles = %v", runs[0].Styles)
	}
	if !reflect.DeepEqual(runs[1].Styles, []Kind{Muted, Provisional}) {
		t.Errorf("runs[1].Styles = %v", runs[1].Styles)
	}
}

func TestParseUnmatchedClose(t *testing.T) {
	s := "본문" + string([]rune{etx, 'r'}) + "계속"
	runs := Parse(s)
	if len(runs) != 1 || runs[0].Text != "본문계속" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestAttrLastOpenedWins(t *testing.T) {
	// 회색 안에서 미확정이 열리면 색은 미확정이 이기고 기울임은 유지된다
	r := Run{Styles: []Kind{Muted, Provisional}}
	a := r.Attr()
	if a.R != 200 || a.G != 30 || a.B != 30 {
		t.Errorf("color = (%d,%d,%d), want provisional red", a.R, a.G, a.B)
	}
	if !a.Bold || !a.Italic {
		t.Errorf("bold=%v italic=%v, want both true", a.Bold, a.Italic)
	}
}

func TestAttrOnBase(t *testing.T) {
	base := Attr{Bold: true}
	a := Run{Styles: []Kind{Resolved}}.AttrOn(base)
	if !a.Bold {
		t.Error("기본 굵기가 유지되어야 함")
	}
	if a.R != 20 || a.G != 60 || a.B != 160 {
		t.Errorf("color = (%d,%d,%d), want resolved blue", a.R, a.G, a.B)
	}
}
