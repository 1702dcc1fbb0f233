package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fundops/backoffice/internal/pkg/pdfext"
	"github.com/fundops/backoffice/internal/service"
	"github.com/gin-gonic/gin"
)

// DocumentHandler 생성 문서 Handler
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler Handler 생성
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Generate 결합 문서 생성
func (h *DocumentHandler) Generate(c *gin.Context) {
	fundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FundID = fundID

	doc, err := h.documentService.Generate(c.Request.Context(), req)
	if err != nil {
		writeDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": doc})
}

// Preview 저장 없는 미리보기 PDF
func (h *DocumentHandler) Preview(c *gin.Context) {
	fundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FundID = fundID

	data, err := h.documentService.Preview(c.Request.Context(), req)
	if err != nil {
		writeDocumentError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", data)
}

// ListByFund 조합의 문서 목록
func (h *DocumentHandler) ListByFund(c *gin.Context) {
	fundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	docs, err := h.documentService.ListByFund(c.Request.Context(), fundID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": docs})
}

// Get 문서 조회
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// Children 조합원별 문서 행 목록
func (h *DocumentHandler) Children(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	docs, err := h.documentService.Children(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": docs})
}

// Download 결합 산출물 다운로드
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.documentService.Artifact(c.Request.Context(), id)
	if err != nil {
		writeDocumentError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadMember 조합원별 문서 다운로드 (최초 호출 시 추출·기억)
func (h *DocumentHandler) DownloadMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	data, child, err := h.documentService.MemberArtifact(c.Request.Context(), id, memberID)
	if err != nil {
		writeDocumentError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+child.Title+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Delete 문서 삭제
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		writeDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// writeDocumentError 서비스 오류를 HTTP 상태로 옮긴다
func writeDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrFundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPageMapMissing),
		errors.Is(err, pdfext.ErrPageOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// pathID URL 파라미터를 uint ID 로 파싱한다
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
