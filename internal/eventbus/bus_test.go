package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestSubscribePublish(t *testing.T) {
	bus := NewDocumentEventBus()
	var received []DocumentEvent
	bus.Subscribe(DocumentEventGenerated, func(ctx context.Context, e DocumentEvent) error {
		received = append(received, e)
		return nil
	})

	err := bus.Publish(context.Background(), DocumentEventGenerated, DocumentEvent{
		Type: DocumentEventGenerated, DocumentID: 7, FundID: 3, DocType: "agreement",
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(received) != 1 || received[0].DocumentID != 7 {
		t.Fatalf("received = %+v", received)
	}
}

func TestPublishOtherTypeIgnored(t *testing.T) {
	bus := NewDocumentEventBus()
	called := false
	bus.Subscribe(DocumentEventGenerated, func(ctx context.Context, e DocumentEvent) error {
		called = true
		return nil
	})
	if err := bus.Publish(context.Background(), DocumentEventExtracted, DocumentEvent{}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if called {
		t.Error("다른 종류 이벤트에 호출되면 안 됨")
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewDocumentEventBus()
	count := 0
	unsubscribe := bus.Subscribe(DocumentEventGenerated, func(ctx context.Context, e DocumentEvent) error {
		count++
		return nil
	})
	_ = bus.Publish(context.Background(), DocumentEventGenerated, DocumentEvent{})
	unsubscribe()
	_ = bus.Publish(context.Background(), DocumentEventGenerated, DocumentEvent{})
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestPublishCollectsErrors(t *testing.T) {
	bus := NewDocumentEventBus()
	errBoom := errors.New("boom")
	bus.Subscribe(DocumentEventGenerated, func(ctx context.Context, e DocumentEvent) error {
		return errBoom
	})
	bus.Subscribe(DocumentEventGenerated, func(ctx context.Context, e DocumentEvent) error {
		return nil
	})
	err := bus.Publish(context.Background(), DocumentEventGenerated, DocumentEvent{})
	if !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want errBoom", err)
	}
}

func TestSubscribeNilHandler(t *testing.T) {
	bus := NewDocumentEventBus()
	unsubscribe := bus.Subscribe(DocumentEventGenerated, nil)
	unsubscribe()
	if err := bus.Publish(context.Background(), DocumentEventGenerated, DocumentEvent{}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
}
