package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fundops/backoffice/internal/eventbus"
	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/blob"
	"github.com/fundops/backoffice/internal/pkg/doctree"
	"github.com/fundops/backoffice/internal/pkg/pdfext"
	"github.com/fundops/backoffice/internal/repository"
	"github.com/fundops/backoffice/internal/service/composer"
	"k8s.io/klog/v2"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrPageMapMissing   = errors.New("document has no page map entry for member")
)

// 문서 종류별 표시 이름
var docTypeLabels = map[string]string{
	model.DocTypeAgreement: "규약",
	model.DocTypeMinutes:   "총회 의사록",
	model.DocTypeConsent:   "서면 동의서",
	model.DocTypeReceipt:   "출자금 영수증",
}

// GenerateDocumentRequest 문서 생성 요청.
// Values/Tables 는 호출 측이 넘기는 컨텍스트로, 같은 키의 내장 값을 덮는다.
type GenerateDocumentRequest struct {
	FundID           uint                  `json:"-"` // URL 파라미터에서 받는다
	Type             string                `json:"type" binding:"required,min=1,max=50"`
	Title            string                `json:"title" binding:"max=255"`
	ProcessedContent string                `json:"processed_content"` // 편집된 안건 본문 등
	Values           map[string]string     `json:"values"`
	Tables           map[string][][]string `json:"tables"`
}

// DocumentService 생성 문서 서비스.
// 조판(버퍼 생성)과 영속화를 분리해, 조판이 실패하면 어떤 행도 남지 않는다.
type DocumentService interface {
	Generate(ctx context.Context, req GenerateDocumentRequest) (*model.GeneratedDocument, error)
	Preview(ctx context.Context, req GenerateDocumentRequest) ([]byte, error)
	Get(ctx context.Context, id uint) (*model.GeneratedDocument, error)
	ListByFund(ctx context.Context, fundID uint) ([]model.GeneratedDocument, error)
	Children(ctx context.Context, parentID uint) ([]model.GeneratedDocument, error)
	Artifact(ctx context.Context, id uint) ([]byte, string, error)
	// MemberArtifact 조합원별 문서를 돌려준다. 한 번 추출되면 경로가
	// 자식 행에 기억되어 재조판 없이 재사용된다.
	MemberArtifact(ctx context.Context, parentID, memberID uint) ([]byte, *model.GeneratedDocument, error)
	Delete(ctx context.Context, id uint) error
}

// documentService 구현
type documentService struct {
	templateSvc TemplateService
	fundRepo    repository.FundRepository
	docRepo     repository.DocumentRepository
	blobStore   blob.Store
	composerSvc *composer.Service
	bus         *eventbus.DocumentEventBus
}

// NewDocumentService 서비스 인스턴스 생성
func NewDocumentService(
	templateSvc TemplateService,
	fundRepo repository.FundRepository,
	docRepo repository.DocumentRepository,
	blobStore blob.Store,
	composerSvc *composer.Service,
	bus *eventbus.DocumentEventBus,
) DocumentService {
	return &documentService{
		templateSvc: templateSvc,
		fundRepo:    fundRepo,
		docRepo:     docRepo,
		blobStore:   blobStore,
		composerSvc: composerSvc,
		bus:         bus,
	}
}

// Generate 활성 템플릿으로 결합 문서를 조판해 저장한다.
// 부모 행은 산출물과 페이지 맵을 갖고, 조합원별 자식 행은 메타데이터만
// 만들어 둔다. 자식 산출물은 최초 조회 때 페이지 추출로 지연 생성된다.
func (s *documentService) Generate(ctx context.Context, req GenerateDocumentRequest) (*model.GeneratedDocument, error) {
	result, tpl, rc, err := s.compose(ctx, req, false)
	if err != nil {
		return nil, err
	}

	path, err := s.blobStore.Write(req.Type+".pdf", result.PDF)
	if err != nil {
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	snapshot, err := generationSnapshot(rc)
	if err != nil {
		return nil, err
	}

	parent := &model.GeneratedDocument{
		FundID:            req.FundID,
		Type:              req.Type,
		Title:             s.documentTitle(req, rc),
		ProcessedContent:  req.ProcessedContent,
		GenerationContext: snapshot,
		TemplateID:        tpl.ID,
		TemplateVersion:   tpl.Version,
		ArtifactPath:      path,
		IsCombinedParent:  len(result.PageMap) > 0,
	}
	if err := parent.SetPageMap(result.PageMap); err != nil {
		return nil, fmt.Errorf("failed to encode page map: %w", err)
	}
	if err := s.docRepo.Create(parent); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	for _, entry := range result.PageMap {
		memberID := entry.MemberID
		child := &model.GeneratedDocument{
			FundID:           req.FundID,
			Type:             req.Type,
			Title:            parent.Title + " - " + entry.MemberName,
			TemplateID:       tpl.ID,
			TemplateVersion:  tpl.Version,
			ParentDocumentID: &parent.ID,
			MemberID:         &memberID,
			MemberName:       entry.MemberName,
		}
		if err := s.docRepo.Create(child); err != nil {
			return nil, fmt.Errorf("failed to create member document row: %w", err)
		}
	}

	klog.V(6).Infof("[document.Generate] 결합 문서 생성: id=%d type=%s %d페이지, 자식 %d건",
		parent.ID, parent.Type, result.PageCount, len(result.PageMap))

	if err := s.bus.Publish(ctx, eventbus.DocumentEventGenerated, eventbus.DocumentEvent{
		Type:         eventbus.DocumentEventGenerated,
		DocumentID:   parent.ID,
		FundID:       parent.FundID,
		DocType:      parent.Type,
		ArtifactPath: parent.ArtifactPath,
		PageCount:    result.PageCount,
	}); err != nil {
		klog.Errorf("[document.Generate] 이벤트 발행 실패: %v", err)
	}
	return parent, nil
}

// Preview 저장 없이 미리보기 산출물만 조판한다.
// 치환값·미확정값이 색상 표식으로 드러난다.
func (s *documentService) Preview(ctx context.Context, req GenerateDocumentRequest) ([]byte, error) {
	result, _, _, err := s.compose(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return result.PDF, nil
}

// compose 템플릿·조합 데이터를 모아 조판까지 수행한다. 저장은 하지 않는다.
func (s *documentService) compose(ctx context.Context, req GenerateDocumentRequest, preview bool) (*composer.Result, *model.DocumentTemplate, composer.Context, error) {
	var zero composer.Context

	tpl, err := s.templateSvc.ResolveActive(ctx, req.Type, &req.FundID)
	if err != nil {
		return nil, nil, zero, err
	}
	content, err := doctree.Parse(tpl.Content)
	if err != nil {
		return nil, nil, zero, err
	}

	fund, err := s.fundRepo.Get(req.FundID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, zero, ErrFundNotFound
		}
		return nil, nil, zero, fmt.Errorf("failed to get fund: %w", err)
	}

	rc := s.buildContext(fund, req)
	opt := composer.Options{
		Title:           s.documentTitle(req, rc),
		Preview:         preview,
		ExternalContent: s.externalContentResolver(ctx, req.FundID),
	}

	result, err := s.composerSvc.Compose(ctx, content, rc, opt)
	if err != nil {
		return nil, nil, zero, err
	}
	return result, tpl, rc, nil
}

// buildContext 조판 컨텍스트를 만든다. 내장 키 위에 요청 값이 겹친다.
//
// 내장 값 키: fund.name, fund.regno, fund.address, fund.formedAt,
// fund.unitAmount, document.body, document.date
// 조합원 키: member.name, member.role, member.regno, member.address,
// member.units, member.amount, member.sealName
// 내장 표 키: members (연번, 성명, 구분, 출자좌수, 출자금액)
func (s *documentService) buildContext(fund *model.Fund, req GenerateDocumentRequest) composer.Context {
	values := map[string]string{
		"fund.name":       fund.Name,
		"fund.regno":      fund.RegistrationNo,
		"fund.address":    fund.Address,
		"fund.unitAmount": composer.FormatAmount(fund.UnitAmount),
		"document.date":   time.Now().Format("2006년 1월 2일"),
	}
	if fund.FormedAt != nil {
		values["fund.formedAt"] = fund.FormedAt.Format("2006년 1월 2일")
	}
	if req.ProcessedContent != "" {
		values["document.body"] = req.ProcessedContent
	}
	for k, v := range req.Values {
		values[k] = v
	}

	members := make([]composer.Member, 0, len(fund.Members))
	roster := make([][]string, 0, len(fund.Members))
	for i, m := range fund.Members {
		members = append(members, composer.Member{
			ID:   m.ID,
			Name: m.Name,
			Role: m.Role,
			Fields: map[string]string{
				"member.name":     m.Name,
				"member.role":     roleLabel(m.Role),
				"member.regno":    m.RegistrationNo,
				"member.address":  m.Address,
				"member.units":    composer.FormatAmount(m.Units),
				"member.amount":   composer.FormatAmount(m.Amount),
				"member.sealName": m.SealName,
			},
		})
		roster = append(roster, []string{
			fmt.Sprintf("%d", i+1),
			m.Name,
			roleLabel(m.Role),
			composer.FormatAmount(m.Units),
			composer.FormatAmount(m.Amount),
		})
	}

	tables := map[string][][]string{"members": roster}
	for k, v := range req.Tables {
		tables[k] = v
	}

	return composer.Context{Values: values, Members: members, Tables: tables}
}

// externalContentResolver 별지의 공용 서식 참조를 활성 템플릿 조회로 푼다
func (s *documentService) externalContentResolver(ctx context.Context, fundID uint) func(ref string) (*doctree.Content, error) {
	return func(ref string) (*doctree.Content, error) {
		tpl, err := s.templateSvc.ResolveActive(ctx, ref, &fundID)
		if err != nil {
			return nil, err
		}
		return doctree.Parse(tpl.Content)
	}
}

func (s *documentService) documentTitle(req GenerateDocumentRequest, rc composer.Context) string {
	if req.Title != "" {
		return req.Title
	}
	label := docTypeLabels[req.Type]
	if label == "" {
		label = req.Type
	}
	return rc.Values["fund.name"] + " " + label
}

// Get ID 로 문서 조회
func (s *documentService) Get(ctx context.Context, id uint) (*model.GeneratedDocument, error) {
	doc, err := s.docRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// ListByFund 조합의 부모 문서 목록
func (s *documentService) ListByFund(ctx context.Context, fundID uint) ([]model.GeneratedDocument, error) {
	docs, err := s.docRepo.ListByFund(fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Children 부모에 딸린 조합원별 문서 행
func (s *documentService) Children(ctx context.Context, parentID uint) ([]model.GeneratedDocument, error) {
	docs, err := s.docRepo.GetChildren(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member documents: %w", err)
	}
	return docs, nil
}

// Artifact 문서 산출물 바이트와 파일명을 돌려준다
func (s *documentService) Artifact(ctx context.Context, id uint) ([]byte, string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if doc.ArtifactPath == "" {
		return nil, "", fmt.Errorf("%w: 산출물이 아직 없음", ErrDocumentNotFound)
	}
	data, err := s.blobStore.Read(doc.ArtifactPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, doc.Title + ".pdf", nil
}

// MemberArtifact 조합원별 문서를 돌려준다. 기억된 경로가 있으면 그대로
// 읽고, 없으면 부모 산출물에서 해당 페이지 범위를 추출해 저장해 둔다.
// 추출은 멱등이므로 재시도해도 같은 바이트가 나온다.
func (s *documentService) MemberArtifact(ctx context.Context, parentID, memberID uint) ([]byte, *model.GeneratedDocument, error) {
	child, err := s.docRepo.GetChildByMember(parentID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("failed to get member document: %w", err)
	}

	// 이미 추출된 산출물은 재조판 없이 재사용한다
	if child.ArtifactPath != "" {
		data, err := s.blobStore.Read(child.ArtifactPath)
		if err == nil {
			return data, child, nil
		}
		klog.Errorf("[document.MemberArtifact] 기억된 산출물 읽기 실패, 다시 추출: %v", err)
	}

	parent, err := s.Get(ctx, parentID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := parent.PageMap()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode page map: %w", err)
	}
	var entry *model.PageMapEntry
	for i := range entries {
		if entries[i].MemberID == memberID {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil, nil, ErrPageMapMissing
	}

	combined, err := s.blobStore.Read(parent.ArtifactPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read combined artifact: %w", err)
	}
	sub, err := pdfext.Extract(combined, pdfext.Range(entry.StartPage, entry.PageCount))
	if err != nil {
		return nil, nil, err
	}

	path, err := s.blobStore.Write(fmt.Sprintf("%s-member-%d.pdf", parent.Type, memberID), sub)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store member artifact: %w", err)
	}
	child.ArtifactPath = path
	if err := s.docRepo.Save(child); err != nil {
		return nil, nil, fmt.Errorf("failed to save member document: %w", err)
	}

	klog.V(6).Infof("[document.MemberArtifact] 조합원 문서 추출: parent=%d member=%d pages=%d~%d",
		parentID, memberID, entry.StartPage, entry.StartPage+entry.PageCount-1)

	if err := s.bus.Publish(ctx, eventbus.DocumentEventExtracted, eventbus.DocumentEvent{
		Type:         eventbus.DocumentEventExtracted,
		DocumentID:   child.ID,
		FundID:       child.FundID,
		DocType:      child.Type,
		MemberID:     memberID,
		MemberName:   child.MemberName,
		ArtifactPath: child.ArtifactPath,
		PageCount:    entry.PageCount,
	}); err != nil {
		klog.Errorf("[document.MemberArtifact] 이벤트 발행 실패: %v", err)
	}
	return sub, child, nil
}

// Delete 문서와 자식 행, 산출물을 지운다
func (s *documentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	children, err := s.docRepo.GetChildren(id)
	if err != nil {
		return fmt.Errorf("failed to list member documents: %w", err)
	}
	for _, child := range children {
		if child.ArtifactPath != "" {
			if err := s.blobStore.Delete(child.ArtifactPath); err != nil {
				klog.Errorf("[document.Delete] 자식 산출물 삭제 실패: %v", err)
			}
		}
	}
	if doc.ArtifactPath != "" {
		if err := s.blobStore.Delete(doc.ArtifactPath); err != nil {
			klog.Errorf("[document.Delete] 산출물 삭제 실패: %v", err)
		}
	}
	if err := s.docRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// roleLabel 조합원 구분 표시 이름
func roleLabel(role string) string {
	switch role {
	case model.RoleGP:
		return "업무집행조합원"
	case model.RoleLP:
		return "유한책임조합원"
	default:
		return role
	}
}

// generationSnapshot 생성 시점의 컨텍스트 요약을 JSON 으로 남긴다
func generationSnapshot(rc composer.Context) (string, error) {
	snapshot := map[string]any{
		"values":      rc.Values,
		"memberCount": len(rc.Members),
		"generatedAt": time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation context: %w", err)
	}
	return string(data), nil
}
