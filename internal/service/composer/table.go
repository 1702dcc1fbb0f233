package composer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/styletext"
	"github.com/fundops/backoffice/internal/pkg/vars"
)

const tableRowHeight = 22.0

// renderTable 표 조문을 그린다. 선언된 열 비율을 실제 본문 폭에
// 비례 배분하고, 머리글 행은 음영, 본문 행은 교대 음영으로 칠한다.
// 표가 페이지를 넘으면 세로 괘선은 각 페이지 구간의 시작과 끝에서
// 닫는다. 표 전체 시작점 기준으로 긋지 않는다.
func (s *Service) renderTable(ctx context.Context, l *layout, tbl *doctree.TableConfig, rc Context, indent float64, opt Options) error {
	cols := len(tbl.Headers)
	if cols == 0 {
		return fmt.Errorf("표 머리글이 비어 있음")
	}

	x := marginLeft + indent
	width := contentWidth - indent
	colW := scaleRatios(tbl.ColumnRatios, cols, width)

	rows := rc.Tables[tbl.RowsKey]
	if total := totalsRow(tbl, rows); total != nil {
		rows = append(append([][]string{}, rows...), total)
	}

	// 이 페이지 구간의 표 시작 y. 페이지가 바뀔 때마다 다시 잡는다.
	if l.y+tableRowHeight*2 > pageHeight-marginBottom {
		l.newPage()
	}
	segTop := l.y

	closeSegment := func(bottom float64) {
		l.pdf.SetStrokeColor(60, 60, 60)
		l.pdf.SetLineWidth(0.6)
		cx := x
		l.pdf.Line(cx, segTop, cx, bottom)
		for c := 0; c < cols; c++ {
			cx += colW[c]
			l.pdf.Line(cx, segTop, cx, bottom)
		}
		l.pdf.Line(x, segTop, x+width, segTop)
		l.pdf.Line(x, bottom, x+width, bottom)
	}

	// 머리글 행
	l.pdf.SetFillColor(225, 228, 233)
	l.pdf.RectFromUpperLeftWithStyle(x, l.y, width, tableRowHeight, "F")
	if err := l.drawCells(tbl.Headers, x, colW, sizeTable, styletext.Attr{Bold: true}); err != nil {
		return err
	}
	l.y += tableRowHeight

	for ri, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("표 조판 중단: %w", err)
		}
		if l.y+tableRowHeight > pageHeight-marginBottom {
			closeSegment(l.y)
			l.newPage()
			segTop = l.y
		}

		lastRow := ri == len(rows)-1
		totals := lastRow && len(tbl.SumColumns) > 0
		switch {
		case totals:
			l.pdf.SetFillColor(235, 237, 240)
			l.pdf.RectFromUpperLeftWithStyle(x, l.y, width, tableRowHeight, "F")
		case ri%2 == 1:
			l.pdf.SetFillColor(247, 247, 249)
			l.pdf.RectFromUpperLeftWithStyle(x, l.y, width, tableRowHeight, "F")
		}

		cells := make([]string, cols)
		for c := 0; c < cols && c < len(row); c++ {
			if totals {
				cells[c] = row[c]
			} else {
				cells[c] = vars.MarkValue(row[c], opt.varOpts(false))
			}
		}
		base := styletext.Attr{}
		if totals {
			base = styletext.Attr{Bold: true}
		}
		if err := l.drawCells(cells, x, colW, sizeTable, base); err != nil {
			return err
		}
		l.y += tableRowHeight

		// 행 아래 가로 괘선
		l.pdf.SetStrokeColor(150, 150, 150)
		l.pdf.SetLineWidth(0.3)
		l.pdf.Line(x, l.y, x+width, l.y)
	}

	closeSegment(l.y)
	l.spacer(sizeBody)
	return nil
}

// drawCells 한 행의 칸들을 각 열 가운데 정렬로 그린다. y 는 건드리지 않는다.
func (l *layout) drawCells(cells []string, x float64, colW []float64, size float64, base styletext.Attr) error {
	cx := x
	textY := l.y + (tableRowHeight-size*1.2)/2
	for c, cell := range cells {
		runs := styletext.Parse(cell)
		var cellW float64
		widths := make([]float64, len(runs))
		for i, run := range runs {
			l.setRunFont(run.AttrOn(base), size)
			w, err := l.pdf.MeasureTextWidth(run.Text)
			if err != nil {
				return fmt.Errorf("칸 폭 측정 실패: %w", err)
			}
			widths[i] = w
			cellW += w
		}
		cursorX := cx + (colW[c]-cellW)/2
		if cursorX < cx+2 {
			cursorX = cx + 2
		}
		for i, run := range runs {
			l.setRunFont(run.AttrOn(base), size)
			l.pdf.SetXY(cursorX, textY)
			if err := l.pdf.Cell(nil, run.Text); err != nil {
				return fmt.Errorf("칸 출력 실패: %w", err)
			}
			cursorX += widths[i]
		}
		cx += colW[c]
	}
	l.pdf.SetTextColor(0, 0, 0)
	return nil
}

// scaleRatios 열 비율을 실제 폭으로 배분한다. 비율이 모자라면 남은
// 열에 균등 배분한다.
func scaleRatios(ratios []float64, cols int, width float64) []float64 {
	colW := make([]float64, cols)
	var sum float64
	for i := 0; i < cols; i++ {
		if i < len(ratios) && ratios[i] > 0 {
			colW[i] = ratios[i]
		} else {
			colW[i] = 1
		}
		sum += colW[i]
	}
	for i := range colW {
		colW[i] = colW[i] / sum * width
	}
	return colW
}

// totalsRow 합계 행을 계산한다. 합계 대상 열이 없으면 nil.
func totalsRow(tbl *doctree.TableConfig, rows [][]string) []string {
	if len(tbl.SumColumns) == 0 {
		return nil
	}
	sums := map[int]int64{}
	for _, col := range tbl.SumColumns {
		sums[col] = 0
	}
	for _, row := range rows {
		for _, col := range tbl.SumColumns {
			if col < len(row) {
				sums[col] += parseAmount(row[col])
			}
		}
	}
	total := make([]string, len(tbl.Headers))
	label := tbl.TotalLabel
	if label == "" {
		label = "합계"
	}
	total[0] = label
	for _, col := range tbl.SumColumns {
		if col > 0 && col < len(total) {
			total[col] = FormatAmount(sums[col])
		}
	}
	return total
}

// parseAmount "1,000,000원" 같은 표기에서 숫자만 뽑아 더할 수 있게 한다.
func parseAmount(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatAmount 천 단위 쉼표 표기
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
