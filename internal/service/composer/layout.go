package composer

import (
	"fmt"
	"os"

	"github.com/fundops/backoffice/internal/pkg/styletext"
	"github.com/signintech/gopdf"
)

// A4 페이지 기하(포인트 단위)와 여백
const (
	pageWidth    = 595.28
	pageHeight   = 841.89
	marginLeft   = 60.0
	marginRight  = 60.0
	marginTop    = 70.0
	marginBottom = 70.0
	contentWidth = pageWidth - marginLeft - marginRight

	fontMain = "main"
	fontBold = "main-bold"

	sizeBody    = 10.5
	sizeTitle   = 16.0
	sizeChapter = 13.0
	sizeArticle = 11.5
	sizeTable   = 9.5
	sizeFooter  = 9.0

	lineGap    = 1.6 // 줄 높이 = 글자 크기 × lineGap
	indentStep = 14.0
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// layout 페이지 커서와 폰트 상태를 쥔 조판기.
// 요청 하나에 인스턴스 하나이며 공유 상태가 없다.
type layout struct {
	pdf     *gopdf.GoPdf
	hasBold bool
	pageNum int
	y       float64
}

// newLayout PDF 를 시작하고 폰트를 등록한 뒤 1쪽을 연다.
// 폰트 자산이 없으면 그 요청 전체가 실패한다.
func newLayout(fontPath, fontBoldPath string) (*layout, error) {
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("폰트 자산을 찾을 수 없음 (%s): %w", fontPath, err)
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(fontMain, fontPath); err != nil {
		return nil, fmt.Errorf("본문 폰트 등록 실패: %w", err)
	}
	hasBold := false
	if fontBoldPath != "" {
		if _, err := os.Stat(fontBoldPath); err == nil {
			if err := pdf.AddTTFFont(fontBold, fontBoldPath); err != nil {
				return nil, fmt.Errorf("굵은 폰트 등록 실패: %w", err)
			}
			hasBold = true
		}
	}

	l := &layout{pdf: pdf, hasBold: hasBold}
	l.pdf.AddPage()
	l.pageNum = 1
	l.y = marginTop
	return l, nil
}

// newPage 새 페이지를 열고 페이지 번호 바닥글을 찍는다.
// 1쪽에는 바닥글을 찍지 않는다.
func (l *layout) newPage() {
	l.pdf.AddPage()
	l.pageNum++
	l.y = marginTop
	l.footer()
}

func (l *layout) footer() {
	if l.pageNum <= 1 {
		return
	}
	text := fmt.Sprintf("- %d -", l.pageNum)
	_ = l.pdf.SetFont(fontMain, "", sizeFooter)
	l.pdf.SetTextColor(120, 120, 120)
	w, _ := l.pdf.MeasureTextWidth(text)
	l.pdf.SetXY((pageWidth-w)/2, pageHeight-marginBottom/2-sizeFooter)
	_ = l.pdf.Cell(nil, text)
	l.pdf.SetTextColor(0, 0, 0)
}

// ensure 필요한 높이가 남은 공간을 넘으면 페이지를 넘긴다.
func (l *layout) ensure(height float64) {
	if l.y+height > pageHeight-marginBottom {
		l.newPage()
	}
}

func (l *layout) fontFor(attr styletext.Attr) string {
	if attr.Bold && l.hasBold {
		return fontBold
	}
	return fontMain
}

func (l *layout) setRunFont(attr styletext.Attr, size float64) {
	_ = l.pdf.SetFont(l.fontFor(attr), "", size)
	l.pdf.SetTextColor(attr.R, attr.G, attr.B)
}

// frag 한 줄 안에서 스타일이 같은 조각
type frag struct {
	text string
	attr styletext.Attr
}

// breakRuns 스타일 런 목록을 폭에 맞춰 줄 단위로 나눈다.
// 한글 본문이므로 글자 단위로 접는다. 각 조각의 폭은
// 그 조각의 스타일에 해당하는 폰트로 측정한다.
func (l *layout) breakRuns(runs []styletext.Run, width float64, size float64, base styletext.Attr) ([][]frag, error) {
	var lines [][]frag
	var line []frag
	remaining := width

	appendFrag := func(text string, attr styletext.Attr) {
		if text == "" {
			return
		}
		if n := len(line); n > 0 && line[n-1].attr == attr {
			line[n-1].text += text
			return
		}
		line = append(line, frag{text: text, attr: attr})
	}

	for _, run := range runs {
		attr := run.AttrOn(base)
		l.setRunFont(attr, size)
		var buf []rune
		for _, r := range run.Text {
			if r == '\n' {
				appendFrag(string(buf), attr)
				buf = buf[:0]
				lines = append(lines, line)
				line = nil
				remaining = width
				continue
			}
			cw, err := l.pdf.MeasureTextWidth(string(r))
			if err != nil {
				return nil, fmt.Errorf("폭 측정 실패: %w", err)
			}
			if cw > remaining && (len(line) > 0 || len(buf) > 0) {
				appendFrag(string(buf), attr)
				buf = buf[:0]
				lines = append(lines, line)
				line = nil
				remaining = width
			}
			buf = append(buf, r)
			remaining -= cw
		}
		appendFrag(string(buf), attr)
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines, nil
}

// writeStyled 스타일 표식이 섞인 문자열을 지정 폭 안에 그린다.
// 가운데·오른쪽 정렬은 줄의 모든 조각 폭을 해당 폰트로 먼저 측정해
// 시작 x 를 계산한 뒤 조각마다 절대 좌표로 내보낸다. 스타일 경계를
// 넘는 정렬은 직전 커서 이어쓰기로는 맞출 수 없다.
func (l *layout) writeStyled(text string, x, width float64, a align, size float64) error {
	return l.writeStyledBase(text, x, width, a, size, styletext.Attr{})
}

// writeHeading 제목부를 굵은 검정 기본 속성으로 그린다.
func (l *layout) writeHeading(text string, x, width float64, a align, size float64) error {
	return l.writeStyledBase(text, x, width, a, size, styletext.Attr{Bold: true})
}

func (l *layout) writeStyledBase(text string, x, width float64, a align, size float64, base styletext.Attr) error {
	runs := styletext.Parse(text)
	lines, err := l.breakRuns(runs, width, size, base)
	if err != nil {
		return err
	}
	lineH := size * lineGap

	for _, line := range lines {
		l.ensure(lineH)

		widths := make([]float64, len(line))
		var lineW float64
		for i, f := range line {
			l.setRunFont(f.attr, size)
			w, err := l.pdf.MeasureTextWidth(f.text)
			if err != nil {
				return fmt.Errorf("폭 측정 실패: %w", err)
			}
			widths[i] = w
			lineW += w
		}

		cursorX := x
		switch a {
		case alignCenter:
			cursorX = x + (width-lineW)/2
		case alignRight:
			cursorX = x + width - lineW
		}

		for i, f := range line {
			l.setRunFont(f.attr, size)
			l.pdf.SetXY(cursorX, l.y)
			if err := l.pdf.Cell(nil, f.text); err != nil {
				return fmt.Errorf("텍스트 출력 실패: %w", err)
			}
			cursorX += widths[i]
		}
		l.y += lineH
	}
	l.pdf.SetTextColor(0, 0, 0)
	return nil
}

// measureStyled 표식 문자열이 차지할 높이를 계산만 한다.
func (l *layout) measureStyled(text string, width, size float64) (float64, error) {
	lines, err := l.breakRuns(styletext.Parse(text), width, size, styletext.Attr{})
	if err != nil {
		return 0, err
	}
	return float64(len(lines)) * size * lineGap, nil
}

func (l *layout) spacer(h float64) {
	l.ensure(h)
	l.y += h
}

func (l *layout) bytes() []byte {
	return l.pdf.GetBytesPdf()
}
