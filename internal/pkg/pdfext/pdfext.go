// Package pdfext 는 결합 PDF 산출물에서 지정 페이지만 잘라내
// 새 산출물을 만든다. 재조판 없이 원본 페이지를 그대로 옮기므로
// 같은 입력에 대해 항상 같은 바이트가 나온다.
package pdfext

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrPageOutOfRange 요청 페이지가 문서 범위를 벗어남. 호출자 오류이며
// 가까운 페이지로 조정하지 않는다.
var ErrPageOutOfRange = errors.New("page number out of range")

// PageCount 산출물의 전체 페이지 수를 센다.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("페이지 수 확인 실패: %w", err)
	}
	return count, nil
}

// Extract 1부터 세는 페이지 번호 목록(연속일 필요 없음)에 해당하는
// 페이지만 담은 새 산출물을 만든다. 페이지는 원본 순서를 유지한다.
func Extract(data []byte, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: 요청 페이지 없음", ErrPageOutOfRange)
	}

	total, err := PageCount(data)
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(pages))
	for _, p := range pages {
		if p < 1 || p > total {
			return nil, fmt.Errorf("%w: %d (전체 %d페이지)", ErrPageOutOfRange, p, total)
		}
		selected = append(selected, strconv.Itoa(p))
	}

	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(data), &out, selected, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("페이지 추출 실패: %w", err)
	}
	return out.Bytes(), nil
}

// Range start 부터 count 페이지만큼의 연속 페이지 번호 목록을 만든다.
func Range(start, count int) []int {
	if count < 1 {
		count = 1
	}
	pages := make([]int, 0, count)
	for p := start; p < start+count; p++ {
		pages = append(pages, p)
	}
	return pages
}
