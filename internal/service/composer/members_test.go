package composer

import (
	"testing"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/doctree"
)

func TestFilterMembers(t *testing.T) {
	members := []Member{
		{ID: 1, Name: "가온벤처 주식회사", Role: model.RoleGP},
		{ID: 2, Name: "홍길동", Role: model.RoleLP},
		{ID: 3, Name: "김철수", Role: model.RoleLP},
	}

	if got := FilterMembers(members, doctree.FilterGPOnly); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("GP 필터: %+v", got)
	}
	if got := FilterMembers(members, doctree.FilterLPOnly); len(got) != 2 {
		t.Errorf("LP 필터: %+v", got)
	}
	if got := FilterMembers(members, doctree.FilterAll); len(got) != 3 {
		t.Errorf("전체 필터: %+v", got)
	}
	// 빈 필터는 전체와 같고 원본과 분리된 사본이어야 한다
	got := FilterMembers(members, "")
	if len(got) != 3 {
		t.Fatalf("빈 필터: %+v", got)
	}
	got[0].Name = "변경"
	if members[0].Name == "변경" {
		t.Error("사본이 원본을 공유하면 안 됨")
	}
}

func TestSortMembersStripsEntityPrefix(t *testing.T) {
	members := []Member{
		{Name: "주식회사 나라기술"},
		{Name: "가온벤처"},
		{Name: "나라기술"},
	}
	SortMembers(members)
	want := []string{"가온벤처", "나라기술", "주식회사 나라기술"}
	for i, w := range want {
		if members[i].Name != w {
			t.Fatalf("정렬 결과 [%d] = %q, want %q (전체: %+v)", i, members[i].Name, w, members)
		}
	}
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"주식회사 한빛", "한빛"},
		{"㈜한빛", "한빛"},
		{"㈜ 한빛", "한빛"},
		{"농업회사법인 주식회사 푸른들", "푸른들"},
		{"홍길동", "홍길동"},
		{"  유한회사 바다  ", "바다"},
	}
	for _, tt := range tests {
		if got := sortKey(tt.name); got != tt.want {
			t.Errorf("sortKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
