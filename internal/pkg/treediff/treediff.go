// Package treediff 는 두 템플릿 조문 트리 사이의 구조적 변경 내역을 계산한다.
// 형제 노드는 배열 인덱스가 아니라 번호(ordinal) 기반 식별 키로 짝을 맞추므로
// 순서만 바뀐 조문이 삭제+추가 쌍으로 잘못 잡히지 않는다.
package treediff

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/numbering"
)

// ChangeKind 변경 종류
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Removed  ChangeKind = "removed"
	Modified ChangeKind = "modified"
)

// 표시 값 자리표시자. 빈 문자열과 값 자체의 부재를 구분해 보여준다.
const (
	placeholderEmpty = "(빈 값)"
	placeholderNone  = "(없음)"
)

// maxDisplayLen 변경 내역에 표시하는 값의 최대 길이(룬 기준).
// 넘치는 값은 명시적인 생략 표시와 함께 잘라낸다.
const maxDisplayLen = 200

// Change 변경 내역 한 건
type Change struct {
	Path        []int      `json:"path"` // 변경 기준 트리의 구조 경로
	Kind        ChangeKind `json:"kind"`
	OldValue    string     `json:"oldValue,omitempty"`
	NewValue    string     `json:"newValue,omitempty"`
	DisplayPath string     `json:"displayPath"` // 법률 인용 표기 경로
}

// Result 변경 내역 전체와 종류별 건수 요약
type Result struct {
	Changes []Change           `json:"changes"`
	Summary map[ChangeKind]int `json:"summary"`
}

// Diff 두 트리(변경 전/후)의 변경 내역을 계산한다.
// 두 트리는 휘발성 필드(식별자, 시각, 활성 플래그 등)가 이미 제거된
// 본문만이어야 한다. 동일 트리를 비교하면 빈 결과가 나온다.
func Diff(oldContent, newContent *doctree.Content) *Result {
	d := &differ{old: oldContent}
	d.diffSections(oldContent.Sections, newContent.Sections, nil, 0)
	d.diffAppendices(oldContent.Appendices, newContent.Appendices)

	summary := map[ChangeKind]int{}
	for _, c := range d.changes {
		summary[c.Kind]++
	}
	return &Result{Changes: d.changes, Summary: summary}
}

// CitationPath 구조 경로를 변경 전 트리 기준의 법률 인용 표기로 바꾼다.
// 경로의 각 조상이 가진 번호를 읽어 "제7조 제2항" 식으로 이어 붙인다.
// 번호가 음수인 조상은 인용 표기에서 제외한다. 경로가 트리를 벗어나면
// 남은 구간을 위치 번호로 표기한다. 읽기 전용이며 diff 계산과 분리되어 있다.
func CitationPath(tree *doctree.Content, path []int) string {
	var parts []string
	siblings := tree.Sections
	for depth, idx := range path {
		if idx < 0 || idx >= len(siblings) {
			parts = append(parts, fmt.Sprintf("(%d번째)", idx+1))
			siblings = nil
			continue
		}
		node := siblings[idx]
		if cite := numbering.Citation(depth, node.Ordinal); cite != "" {
			parts = append(parts, cite)
		}
		siblings = node.Children
	}
	if len(parts) == 0 {
		return "부칙"
	}
	return strings.Join(parts, " ")
}

type differ struct {
	old     *doctree.Content
	changes []Change
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

// sectionKey 형제간 짝 맞추기에 쓰는 식별 키.
// 번호가 있으면 번호, 없으면 제목, 그마저 없으면 전체 값 해시를 쓴다.
// 같은 키가 반복되면 등장 횟수로 구분한다.
func sectionKeys(secs []doctree.Section) []string {
	keys := make([]string, len(secs))
	seen := map[string]int{}
	for i, s := range secs {
		var key string
		switch {
		case s.Ordinal > 0:
			key = fmt.Sprintf("o:%d", s.Ordinal)
		case s.Title != "":
			key = "t:" + s.Title
		default:
			key = "h:" + hashValue(s)
		}
		if n := seen[key]; n > 0 {
			key = fmt.Sprintf("%s#%d", key, n)
		}
		seen[key]++
		keys[i] = key
	}
	return keys
}

func hashValue(v any) string {
	data, _ := json.Marshal(v)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:8])
}

// diffSections 형제 목록을 키로 짝지어 비교한다.
// 변경 후 트리 순서대로 추가/수정을 내보내고, 짝 없는 기존 노드를
// 삭제로 뒤이어 내보낸다.
func (d *differ) diffSections(oldSecs, newSecs []doctree.Section, oldPath []int, depth int) {
	oldKeys := sectionKeys(oldSecs)
	newKeys := sectionKeys(newSecs)

	oldIndex := map[string]int{}
	for i, k := range oldKeys {
		oldIndex[k] = i
	}
	matched := make([]bool, len(oldSecs))

	for i, sec := range newSecs {
		if j, ok := oldIndex[newKeys[i]]; ok {
			matched[j] = true
			childPath := append(append([]int{}, oldPath...), j)
			d.diffNode(&oldSecs[j], &sec, childPath, depth)
			continue
		}
		// 변경 전 트리에 없는 조문: 하위 트리 전체를 추가 한 건으로 묶는다
		citation := d.parentCitation(oldPath) + segmentCitation(depth, sec.Ordinal)
		d.add(Change{
			Path:        append(append([]int{}, oldPath...), i),
			Kind:        Added,
			OldValue:    placeholderNone,
			NewValue:    renderSubtree(&sec),
			DisplayPath: citation,
		})
	}

	for j, sec := range oldSecs {
		if matched[j] {
			continue
		}
		childPath := append(append([]int{}, oldPath...), j)
		d.add(Change{
			Path:        childPath,
			Kind:        Removed,
			OldValue:    renderSubtree(&sec),
			NewValue:    placeholderNone,
			DisplayPath: CitationPath(d.old, childPath),
		})
	}
}

// diffNode 짝이 맞은 두 노드의 말단 필드를 비교한 뒤 자식으로 내려간다.
func (d *differ) diffNode(oldSec, newSec *doctree.Section, path []int, depth int) {
	citation := CitationPath(d.old, path)

	if oldSec.Title != newSec.Title {
		d.add(Change{
			Path:        path,
			Kind:        Modified,
			OldValue:    displayValue(oldSec.Title),
			NewValue:    displayValue(newSec.Title),
			DisplayPath: citation + " (제목)",
		})
	}
	if oldSec.Text != newSec.Text {
		d.add(Change{
			Path:        path,
			Kind:        Modified,
			OldValue:    displayValue(oldSec.Text),
			NewValue:    displayValue(newSec.Text),
			DisplayPath: citation,
		})
	}
	if oldSec.Ordinal != newSec.Ordinal {
		d.add(Change{
			Path:        path,
			Kind:        Modified,
			OldValue:    fmt.Sprintf("%d", oldSec.Ordinal),
			NewValue:    fmt.Sprintf("%d", newSec.Ordinal),
			DisplayPath: citation + " (번호)",
		})
	}
	oldKind := oldSec.Kind
	if oldKind == "" {
		oldKind = doctree.KindPlain
	}
	newKind := newSec.Kind
	if newKind == "" {
		newKind = doctree.KindPlain
	}
	if oldKind != newKind {
		d.add(Change{
			Path:        path,
			Kind:        Modified,
			OldValue:    string(oldKind),
			NewValue:    string(newKind),
			DisplayPath: citation + " (종류)",
		})
	}
	if oldJSON, newJSON := tableJSON(oldSec.Table), tableJSON(newSec.Table); oldJSON != newJSON {
		d.add(Change{
			Path:        path,
			Kind:        Modified,
			OldValue:    displayValue(oldJSON),
			NewValue:    displayValue(newJSON),
			DisplayPath: citation + " (표)",
		})
	}

	d.diffSections(oldSec.Children, newSec.Children, path, depth+1)
}

// diffAppendices 별지 목록을 제목 기준으로 짝지어 비교한다.
// 별지 경로는 본문과 구분되는 "별지" 접두를 붙인다.
func (d *differ) diffAppendices(oldApps, newApps []doctree.AppendixDefinition) {
	oldIndex := map[string]int{}
	for i, a := range oldApps {
		oldIndex[a.Title] = i
	}
	matched := make([]bool, len(oldApps))

	for i, app := range newApps {
		j, ok := oldIndex[app.Title]
		if !ok {
			d.add(Change{
				Path:        []int{i},
				Kind:        Added,
				OldValue:    placeholderNone,
				NewValue:    renderAppendix(&app),
				DisplayPath: appendixCitation(i, app.Title),
			})
			continue
		}
		matched[j] = true
		d.diffAppendixPair(&oldApps[j], &app, j)
	}

	for j, app := range oldApps {
		if matched[j] {
			continue
		}
		d.add(Change{
			Path:        []int{j},
			Kind:        Removed,
			OldValue:    renderAppendix(&app),
			NewValue:    placeholderNone,
			DisplayPath: appendixCitation(j, app.Title),
		})
	}
}

func (d *differ) diffAppendixPair(oldApp, newApp *doctree.AppendixDefinition, oldIdx int) {
	prefix := appendixCitation(oldIdx, oldApp.Title)

	if oldApp.RenderKind != newApp.RenderKind {
		d.add(Change{
			Path: []int{oldIdx}, Kind: Modified,
			OldValue: string(oldApp.RenderKind), NewValue: string(newApp.RenderKind),
			DisplayPath: prefix + " (렌더링 방식)",
		})
	}
	if oldApp.EntityFilter != newApp.EntityFilter {
		d.add(Change{
			Path: []int{oldIdx}, Kind: Modified,
			OldValue: displayValue(string(oldApp.EntityFilter)), NewValue: displayValue(string(newApp.EntityFilter)),
			DisplayPath: prefix + " (대상 필터)",
		})
	}
	if oldApp.ExternalRef != newApp.ExternalRef {
		d.add(Change{
			Path: []int{oldIdx}, Kind: Modified,
			OldValue: displayValue(oldApp.ExternalRef), NewValue: displayValue(newApp.ExternalRef),
			DisplayPath: prefix + " (외부 서식 참조)",
		})
	}

	oldFields := map[string]doctree.AppendixField{}
	for _, f := range oldApp.Fields {
		oldFields[f.Label] = f
	}
	newLabels := map[string]bool{}
	for fi, f := range newApp.Fields {
		newLabels[f.Label] = true
		oldField, ok := oldFields[f.Label]
		if !ok {
			d.add(Change{
				Path: []int{oldIdx, fi}, Kind: Added,
				OldValue: placeholderNone, NewValue: displayValue(hashlessField(f)),
				DisplayPath: prefix + " " + f.Label,
			})
			continue
		}
		if hashlessField(oldField) != hashlessField(f) {
			d.add(Change{
				Path: []int{oldIdx, fi}, Kind: Modified,
				OldValue: displayValue(hashlessField(oldField)), NewValue: displayValue(hashlessField(f)),
				DisplayPath: prefix + " " + f.Label,
			})
		}
	}
	for fi, f := range oldApp.Fields {
		if newLabels[f.Label] {
			continue
		}
		d.add(Change{
			Path: []int{oldIdx, fi}, Kind: Removed,
			OldValue: displayValue(hashlessField(f)), NewValue: placeholderNone,
			DisplayPath: prefix + " " + f.Label,
		})
	}
}

// parentCitation 추가된 노드의 조상 경로를 변경 전 트리에서 읽는다.
func (d *differ) parentCitation(oldPath []int) string {
	if len(oldPath) == 0 {
		return ""
	}
	return CitationPath(d.old, oldPath) + " "
}

// segmentCitation 추가된 노드 자신의 번호는 변경 전 트리에 없으므로
// 새 노드의 번호로 마지막 구간을 표기한다.
func segmentCitation(depth, ordinal int) string {
	if cite := numbering.Citation(depth, ordinal); cite != "" {
		return cite
	}
	return "부칙"
}

func appendixCitation(idx int, title string) string {
	if title == "" {
		return fmt.Sprintf("[별지 %d]", idx+1)
	}
	return fmt.Sprintf("[별지 %d] %s", idx+1, title)
}

// renderSubtree 하위 트리 전체가 추가·삭제될 때는 더 내려가지 않고
// 들여쓰기된 JSON 을 길이 제한과 함께 보여준다.
func renderSubtree(sec *doctree.Section) string {
	data, err := json.MarshalIndent(sec, "", "  ")
	if err != nil {
		return placeholderEmpty
	}
	return truncate(string(data))
}

func renderAppendix(app *doctree.AppendixDefinition) string {
	data, err := json.MarshalIndent(app, "", "  ")
	if err != nil {
		return placeholderEmpty
	}
	return truncate(string(data))
}

func hashlessField(f doctree.AppendixField) string {
	data, _ := json.Marshal(f)
	return string(data)
}

func tableJSON(t *doctree.TableConfig) string {
	if t == nil {
		return ""
	}
	data, _ := json.Marshal(t)
	return string(data)
}

// displayValue 빈 문자열은 자리표시자로 바꾸고 긴 값은 잘라낸다.
func displayValue(s string) string {
	if s == "" {
		return placeholderEmpty
	}
	return truncate(s)
}

// truncate 길이 제한을 넘는 값은 명시적 생략 표시를 붙여 자른다.
// 조용히 자르는 일은 없어야 한다.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDisplayLen {
		return s
	}
	return fmt.Sprintf("%s… (생략, 총 %d자)", string(runes[:maxDisplayLen]), len(runes))
}
