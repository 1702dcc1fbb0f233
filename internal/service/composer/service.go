// Package composer 는 템플릿 조문 트리와 요청 컨텍스트로부터
// 페이지가 매겨진 PDF 산출물과 조합원별 페이지 맵을 만든다.
// 조판은 요청 단위의 동기 연산이며 호출 간 공유 상태가 없다.
package composer

import (
	"context"
	"fmt"

	"github.com/fundops/backoffice/config"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"k8s.io/klog/v2"
)

// Service 문서 조판 서비스
type Service struct {
	fontPath     string
	fontBoldPath string
}

// New 조판 서비스 생성. 폰트 자산 검증은 요청 시점에 한다.
func New(cfg *config.Config) *Service {
	return &Service{
		fontPath:     cfg.Compose.FontPath,
		fontBoldPath: cfg.Compose.FontBoldPath,
	}
}

// Compose 본문 조문과 별지를 차례로 조판해 결합 산출물을 만든다.
// 실패하면 아무것도 저장되지 않는다. 버퍼 생성과 영속화는 분리되어 있다.
func (s *Service) Compose(ctx context.Context, content *doctree.Content, rc Context, opt Options) (*Result, error) {
	if content == nil {
		return nil, fmt.Errorf("템플릿 본문이 비어 있음")
	}
	klog.V(6).Infof("[composer.Compose] 조판 시작: 조문 %d건, 별지 %d건, 조합원 %d명",
		len(content.Sections), len(content.Appendices), len(rc.Members))

	l, err := newLayout(s.fontPath, s.fontBoldPath)
	if err != nil {
		return nil, err
	}

	if opt.Title != "" {
		if err := l.writeHeading(opt.Title, marginLeft, contentWidth, alignCenter, sizeTitle); err != nil {
			return nil, err
		}
		l.spacer(sizeTitle)
	}

	if err := s.renderSections(ctx, l, content.Sections, 0, 0, rc, opt); err != nil {
		return nil, err
	}

	entries, err := s.renderAppendices(ctx, l, content.Appendices, rc, opt)
	if err != nil {
		return nil, err
	}

	result := &Result{PDF: l.bytes(), PageMap: entries, PageCount: l.pageNum}
	klog.V(6).Infof("[composer.Compose] 조판 완료: %d페이지, 페이지 맵 %d건", result.PageCount, len(entries))
	return result, nil
}
