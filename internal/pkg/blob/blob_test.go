package blob

import (
	"errors"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	return store
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	data := []byte("%PDF-1.7 test payload")
	path, err := store.Write("agreement.pdf", data)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("확장자가 보존되어야 함: %q", path)
	}
	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Read = %q, want %q", got, data)
	}
}

func TestWriteDefaultsExtension(t *testing.T) {
	store := newTestStore(t)
	path, err := store.Write("no-extension", []byte("x"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("확장자 없는 이름은 .pdf 로: %q", path)
	}
}

func TestReadMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Read("2026/01/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := newTestStore(t)
	path, err := store.Write("doc.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(path); err != nil {
		t.Errorf("이미 지운 경로 삭제는 오류가 아니어야 함: %v", err)
	}
	if _, err := store.Read(path); !errors.Is(err, ErrNotFound) {
		t.Errorf("삭제 후 읽기: %v", err)
	}
}

func TestReadRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Read("../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("저장소 밖 경로는 ErrNotFound: %v", err)
	}
}
