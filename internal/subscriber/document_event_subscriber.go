package subscriber

import (
	"context"
	"fmt"

	"github.com/fundops/backoffice/internal/eventbus"
	"k8s.io/klog/v2"
)

// Mailer 발송 수단 인터페이스. 실제 메일 전송은 외부 협력자이며,
// 기본 구현은 로그만 남긴다.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// logMailer 전송 없이 로그만 남기는 기본 구현
type logMailer struct{}

func (logMailer) Send(ctx context.Context, subject, body string) error {
	klog.V(6).Infof("[mailer] %s: %s", subject, body)
	return nil
}

// DocumentEventSubscriber 문서 수명주기 이벤트를 받아 알림을 보낸다
type DocumentEventSubscriber struct {
	mailer Mailer
}

func NewDocumentEventSubscriber(mailer Mailer) *DocumentEventSubscriber {
	if mailer == nil {
		mailer = logMailer{}
	}
	return &DocumentEventSubscriber{mailer: mailer}
}

func (s *DocumentEventSubscriber) Register(bus *eventbus.DocumentEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.DocumentEventGenerated, s.handleGenerated)
	bus.Subscribe(eventbus.DocumentEventExtracted, s.handleExtracted)
}

// handleGenerated 결합 문서 생성 알림
func (s *DocumentEventSubscriber) handleGenerated(ctx context.Context, event eventbus.DocumentEvent) error {
	subject := fmt.Sprintf("문서 생성 완료: %s", event.DocType)
	body := fmt.Sprintf("조합 %d의 결합 문서(%d페이지)가 생성되었습니다. 문서 ID: %d", event.FundID, event.PageCount, event.DocumentID)
	return s.mailer.Send(ctx, subject, body)
}

// handleExtracted 조합원별 문서 추출 알림
func (s *DocumentEventSubscriber) handleExtracted(ctx context.Context, event eventbus.DocumentEvent) error {
	klog.V(6).Infof("조합원 문서 추출됨: docID=%d member=%s pages=%d", event.DocumentID, event.MemberName, event.PageCount)
	return nil
}
