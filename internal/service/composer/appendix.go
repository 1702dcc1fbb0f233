package composer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/styletext"
	"github.com/fundops/backoffice/internal/pkg/vars"
	"k8s.io/klog/v2"
)

// 공란 서식에서 값 없이 단위만 남은 꼬리를 지우는 패턴.
// "출자좌수:  좌" 처럼 값이 비면 단위도 찍지 않는다.
var bareUnitPattern = regexp.MustCompile(`^[\s]*(좌|주|원|명|%)[\s]*$`)

// renderAppendices 별지 목록을 조판하고 반복 별지의 페이지 맵을 모은다.
func (s *Service) renderAppendices(ctx context.Context, l *layout, apps []doctree.AppendixDefinition, rc Context, opt Options) ([]model.PageMapEntry, error) {
	var entries []model.PageMapEntry
	for i := range apps {
		app := &apps[i]
		switch app.RenderKind {
		case doctree.RenderSingleSample:
			if err := s.renderSamplePage(ctx, l, app, rc, opt); err != nil {
				return nil, err
			}
		case doctree.RenderRepeating, "":
			appEntries, err := s.renderRepeatingPages(ctx, l, app, rc, opt)
			if err != nil {
				return nil, err
			}
			entries = append(entries, appEntries...)
		default:
			return nil, fmt.Errorf("알 수 없는 별지 렌더링 방식: %s", app.RenderKind)
		}
	}
	return entries, nil
}

// renderRepeatingPages 대상 조합원마다 새 페이지를 열어 같은 별지를
// 반복 조판하고, 조합원별 페이지 범위를 기록한다.
func (s *Service) renderRepeatingPages(ctx context.Context, l *layout, app *doctree.AppendixDefinition, rc Context, opt Options) ([]model.PageMapEntry, error) {
	members := FilterMembers(rc.Members, app.EntityFilter)
	SortMembers(members)

	pagesPer := app.PagesPerEntity
	if pagesPer < 1 {
		pagesPer = 1
	}

	klog.V(6).Infof("[composer.renderRepeatingPages] 별지 %q: 대상 %d명, 조합원당 %d페이지", app.Title, len(members), pagesPer)

	entries := make([]model.PageMapEntry, 0, len(members))
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("별지 조판 중단: %w", err)
		}

		l.newPage()
		startPage := l.pageNum

		merged := mergeContext(rc.Values, member.Fields)
		if err := s.renderAppendixBody(ctx, l, app, merged, rc, opt, false); err != nil {
			return nil, err
		}

		// 고정 페이지 수 별지(2페이지 동의서 등)는 빈 페이지로 채워
		// 조합원 간 페이지 경계를 일정하게 유지한다
		for l.pageNum < startPage+pagesPer-1 {
			l.newPage()
		}

		entries = append(entries, model.PageMapEntry{
			MemberID:   member.ID,
			MemberName: member.Name,
			StartPage:  startPage,
			PageCount:  l.pageNum - startPage + 1,
		})
	}
	return entries, nil
}

// renderSamplePage 값을 비운 공란 서식 한 부를 조판한다.
func (s *Service) renderSamplePage(ctx context.Context, l *layout, app *doctree.AppendixDefinition, rc Context, opt Options) error {
	l.newPage()
	merged := mergeContext(rc.Values, nil)
	return s.renderAppendixBody(ctx, l, app, merged, rc, opt, true)
}

// renderAppendixBody 별지 제목, 공용 서식 본문, 항목 목록을 차례로 그린다.
func (s *Service) renderAppendixBody(ctx context.Context, l *layout, app *doctree.AppendixDefinition, merged map[string]string, rc Context, opt Options, sample bool) error {
	if app.Title != "" {
		title := vars.Resolve(app.Title, merged, opt.varOpts(sample))
		if err := l.writeHeading(title, marginLeft, contentWidth, alignCenter, sizeTitle); err != nil {
			return err
		}
		l.spacer(sizeTitle)
	}

	// 공용 서식 참조: 다른 템플릿의 본문 조문을 이 별지 앞부분에 끼워 넣는다
	if app.ExternalRef != "" && opt.ExternalContent != nil {
		ext, err := opt.ExternalContent(app.ExternalRef)
		if err != nil {
			return fmt.Errorf("공용 서식 %q 해석 실패: %w", app.ExternalRef, err)
		}
		extCtx := rc
		extCtx.Values = merged
		if err := s.renderSections(ctx, l, ext.Sections, 0, 0, extCtx, opt); err != nil {
			return err
		}
		l.spacer(sizeBody)
	}

	for _, field := range app.Fields {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("별지 조판 중단: %w", err)
		}
		if field.Condition != "" && merged[field.Condition] == "" {
			continue
		}

		value := vars.Resolve(field.Expr, merged, opt.varOpts(sample))
		if sample {
			value = cleanupSampleValue(value)
		}
		line := field.Label + " : " + value
		if field.RequiresSeal {
			line += styletext.Wrap(styletext.Muted, "  (인)")
		}
		if err := l.writeStyled(line, marginLeft, contentWidth, alignLeft, sizeBody); err != nil {
			return err
		}
		l.spacer(sizeBody * 0.4)
	}
	return nil
}

// mergeContext 조합 공통 값 위에 조합원 값을 겹친 읽기 전용 사본을 만든다.
func mergeContext(base, member map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(member))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range member {
		merged[k] = v
	}
	return merged
}

// cleanupSampleValue 공란 서식에서 값 없이 단위 글자만 남은 문자열을 비운다.
func cleanupSampleValue(value string) string {
	plain := styletext.Strip(value)
	if bareUnitPattern.MatchString(plain) {
		return ""
	}
	return strings.TrimRight(value, " ")
}
