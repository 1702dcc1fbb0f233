package pdfext

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractNoPages(t *testing.T) {
	if _, err := Extract([]byte("%PDF-1.7"), nil); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("err = %v, want ErrPageOutOfRange", err)
	}
}

func TestPageCountInvalidData(t *testing.T) {
	if _, err := PageCount([]byte("not a pdf")); err == nil {
		t.Error("손상된 입력은 오류여야 함")
	}
}

func TestRange(t *testing.T) {
	if got := Range(5, 3); !reflect.DeepEqual(got, []int{5, 6, 7}) {
		t.Errorf("Range(5, 3) = %v", got)
	}
	if got := Range(2, 1); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Range(2, 1) = %v", got)
	}
	// 페이지 수 0 은 한 페이지로 취급한다
	if got := Range(4, 0); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Range(4, 0) = %v", got)
	}
}
