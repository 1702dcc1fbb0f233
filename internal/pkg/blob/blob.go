// Package blob 은 생성 문서(PDF) 바이트 산출물의 저장소를 추상화한다.
// 이 코어는 산출물 전체 쓰기와 전체 읽기만 수행한다.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound 산출물이 존재하지 않음
var ErrNotFound = errors.New("artifact not found")

// Store 산출물 저장소 인터페이스
type Store interface {
	// Write 산출물을 저장하고 저장 경로를 돌려준다.
	// name 은 경로 생성에 쓰는 힌트이며 확장자를 보존한다.
	Write(name string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
}

// fsStore 로컬 파일시스템 구현. 경로는 년/월 디렉터리 아래
// uuid 파일명으로 만들어 충돌을 피한다.
type fsStore struct {
	baseDir string
}

// NewFSStore 파일시스템 저장소 생성
func NewFSStore(baseDir string) (Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("저장소 디렉터리 생성 실패: %w", err)
	}
	return &fsStore{baseDir: baseDir}, nil
}

func (s *fsStore) Write(name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".pdf"
	}
	now := time.Now()
	rel := filepath.Join(
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.NewString()+ext,
	)
	full := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("산출물 디렉터리 생성 실패: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("산출물 쓰기 실패: %w", err)
	}
	return rel, nil
}

func (s *fsStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, s.clean(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("산출물 읽기 실패: %w", err)
	}
	return data, nil
}

func (s *fsStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, s.clean(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("산출물 삭제 실패: %w", err)
	}
	return nil
}

// clean 저장소 밖으로 나가는 경로를 막는다
func (s *fsStore) clean(path string) string {
	cleaned := filepath.Clean("/" + path)
	return strings.TrimPrefix(cleaned, string(filepath.Separator))
}
