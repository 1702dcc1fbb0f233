package composer

import (
	"math"
	"testing"

	"github.com/fundops/backoffice/internal/pkg/doctree"
)

func TestScaleRatios(t *testing.T) {
	colW := scaleRatios([]float64{1, 2, 1}, 3, 400)
	if len(colW) != 3 {
		t.Fatalf("len = %d", len(colW))
	}
	if math.Abs(colW[0]-100) > 0.01 || math.Abs(colW[1]-200) > 0.01 {
		t.Errorf("colW = %v", colW)
	}
	var sum float64
	for _, w := range colW {
		sum += w
	}
	if math.Abs(sum-400) > 0.01 {
		t.Errorf("합이 전체 폭이어야 함: %v", sum)
	}
}

func TestScaleRatiosMissingRatios(t *testing.T) {
	// 비율이 모자라면 남은 열은 1 로 채워 배분한다
	colW := scaleRatios([]float64{2}, 3, 400)
	if math.Abs(colW[0]-200) > 0.01 || math.Abs(colW[1]-100) > 0.01 || math.Abs(colW[2]-100) > 0.01 {
		t.Errorf("colW = %v", colW)
	}
}

func TestTotalsRow(t *testing.T) {
	tbl := &doctree.TableConfig{
		Headers:    []string{"성명", "출자좌수", "출자금액"},
		SumColumns: []int{1, 2},
	}
	rows := [][]string{
		{"홍길동", "10", "10,000,000원"},
		{"김철수", "5", "5,000,000원"},
	}
	total := totalsRow(tbl, rows)
	if total == nil {
		t.Fatal("합계 행이 없음")
	}
	if total[0] != "합계" {
		t.Errorf("기본 라벨: %q", total[0])
	}
	if total[1] != "15" || total[2] != "15,000,000" {
		t.Errorf("합계 = %v", total)
	}
}

func TestTotalsRowCustomLabelAndNone(t *testing.T) {
	tbl := &doctree.TableConfig{Headers: []string{"성명", "좌수"}, SumColumns: []int{1}, TotalLabel: "총계"}
	total := totalsRow(tbl, [][]string{{"홍길동", "3"}})
	if total[0] != "총계" || total[1] != "3" {
		t.Errorf("total = %v", total)
	}
	if got := totalsRow(&doctree.TableConfig{Headers: []string{"성명"}}, nil); got != nil {
		t.Errorf("합계 열 없으면 nil: %v", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,000,000원", 1000000},
		{"10좌", 10},
		{"", 0},
		{"금액 미정", 0},
	}
	for _, tt := range tests {
		if got := parseAmount(tt.in); got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567890, "1,234,567,890"},
		{-50000, "-50,000"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
