package composer

import (
	"context"
	"fmt"

	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/numbering"
	"github.com/fundops/backoffice/internal/pkg/vars"
)

// renderSections 조문 트리를 깊이 우선으로 조판한다.
// 들여쓰기는 깊이 2부터 누적되며, 번호가 양수인 조문만 한 단계를
// 더한다. 번호 생략 조항은 부모 들여쓰기를 물려받기만 한다.
func (s *Service) renderSections(ctx context.Context, l *layout, secs []doctree.Section, depth int, indent float64, rc Context, opt Options) error {
	for i := range secs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("조판 중단: %w", err)
		}
		sec := &secs[i]

		nodeIndent := indent
		if depth >= 2 && sec.Ordinal > 0 {
			nodeIndent += indentStep
		}
		x := marginLeft + nodeIndent
		width := contentWidth - nodeIndent

		prefix := numbering.Format(depth, sec.Ordinal)
		prefixUsed := false

		if sec.Title != "" {
			title := vars.Resolve(sec.Title, rc.Values, opt.varOpts(false))
			switch depth {
			case 0:
				// 장 제목은 가운데 정렬
				l.spacer(sizeChapter)
				if err := l.writeHeading(joinNumber(prefix, title), marginLeft, contentWidth, alignCenter, sizeChapter); err != nil {
					return err
				}
				l.spacer(sizeChapter / 2)
				prefixUsed = true
			case 1:
				// 조 제목은 왼쪽 정렬, "제N조 (제목)" 꼴
				l.spacer(sizeArticle / 2)
				heading := title
				if prefix != "" {
					heading = fmt.Sprintf("%s (%s)", prefix, title)
				}
				if err := l.writeHeading(heading, marginLeft, contentWidth, alignLeft, sizeArticle); err != nil {
					return err
				}
				prefixUsed = true
			default:
				if err := l.writeHeading(joinNumber(prefix, title), x, width, alignLeft, sizeBody); err != nil {
					return err
				}
				prefixUsed = true
			}
		}

		if sec.Kind == doctree.KindTable && sec.Table != nil {
			if err := s.renderTable(ctx, l, sec.Table, rc, nodeIndent, opt); err != nil {
				return err
			}
		} else if sec.Text != "" {
			text := vars.Resolve(sec.Text, rc.Values, opt.varOpts(false))
			if !prefixUsed {
				text = joinNumber(prefix, text)
			}
			// 블록 높이를 먼저 재고, 현재 페이지에 들어갈 수 있는데도
			// 걸쳐 찍히는 일이 없게 페이지를 넘긴 뒤 내보낸다
			h, err := l.measureStyled(text, width, sizeBody)
			if err != nil {
				return err
			}
			if h <= pageHeight-marginTop-marginBottom {
				l.ensure(h)
			}
			if err := l.writeStyled(text, x, width, alignLeft, sizeBody); err != nil {
				return err
			}
		}

		if err := s.renderSections(ctx, l, sec.Children, depth+1, nodeIndent, rc, opt); err != nil {
			return err
		}
	}
	return nil
}

// joinNumber 번호 표기와 본문을 한 칸 띄워 잇는다. 번호 생략 조항은
// 본문만 남는다.
func joinNumber(prefix, text string) string {
	if prefix == "" {
		return text
	}
	if text == "" {
		return prefix
	}
	return prefix + " " + text
}
