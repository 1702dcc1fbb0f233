package composer

import (
	"sort"
	"strings"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 정렬 키에서 떼어내는 법인격 접두어. "주식회사 한빛"과 "한빛"이
// "한빛" 기준으로 이웃해 정렬되게 한다.
var entityPrefixes = []string{
	"주식회사",
	"유한책임회사",
	"유한회사",
	"합자회사",
	"합명회사",
	"농업회사법인",
	"(주)",
	"(유)",
	"㈜",
}

var memberCollator = collate.New(language.Korean)

// FilterMembers 별지 대상 필터를 적용한다.
func FilterMembers(members []Member, filter doctree.EntityFilter) []Member {
	if filter == "" || filter == doctree.FilterAll {
		return append([]Member{}, members...)
	}
	var out []Member
	for _, m := range members {
		switch filter {
		case doctree.FilterGPOnly:
			if m.Role == model.RoleGP {
				out = append(out, m)
			}
		case doctree.FilterLPOnly:
			if m.Role == model.RoleLP {
				out = append(out, m)
			}
		}
	}
	return out
}

// SortMembers 표시 이름 기준 로캘 정렬. 법인격 접두어를 뗀 이름으로
// 먼저 비교하고, 같으면 원래 이름으로 비교해 안정성을 지킨다.
func SortMembers(members []Member) {
	sort.SliceStable(members, func(i, j int) bool {
		ki, kj := sortKey(members[i].Name), sortKey(members[j].Name)
		if c := memberCollator.CompareString(ki, kj); c != 0 {
			return c < 0
		}
		return memberCollator.CompareString(members[i].Name, members[j].Name) < 0
	})
}

func sortKey(name string) string {
	key := strings.TrimSpace(name)
	for changed := true; changed; {
		changed = false
		for _, prefix := range entityPrefixes {
			if strings.HasPrefix(key, prefix) {
				key = strings.TrimSpace(strings.TrimPrefix(key, prefix))
				changed = true
			}
		}
	}
	return key
}
