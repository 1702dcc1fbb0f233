package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fundops/backoffice/internal/service"
	"github.com/gin-gonic/gin"
)

// TemplateHandler 문서 템플릿 Handler
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler Handler 생성
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create 템플릿 버전 생성
func (h *TemplateHandler) Create(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrVersionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "template version already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": template})
}

// Get 템플릿 조회
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	template, err := h.templateService.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}

// Activate 활성 전환
func (h *TemplateHandler) Activate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.templateService.Activate(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "activated"})
}

// ResolveActive (type, 범위) 의 활성 버전 조회. 조합 범위가 전역을 가린다.
func (h *TemplateHandler) ResolveActive(c *gin.Context) {
	docType := c.Query("type")
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}
	fundID, ok := optionalFundID(c)
	if !ok {
		return
	}

	template, err := h.templateService.ResolveActive(c.Request.Context(), docType, fundID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active template"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}

// ListVersions 버전 이력 조회 (최신순)
func (h *TemplateHandler) ListVersions(c *gin.Context) {
	docType := c.Query("type")
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}
	fundID, ok := optionalFundID(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ListVersions(c.Request.Context(), docType, fundID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// Diff 두 버전의 변경 내역 조회
func (h *TemplateHandler) Diff(c *gin.Context) {
	oldID, err := strconv.ParseUint(c.Query("old"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid old id"})
		return
	}
	newID, err := strconv.ParseUint(c.Query("new"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid new id"})
		return
	}

	result, err := h.templateService.Diff(c.Request.Context(), uint(oldID), uint(newID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		case errors.Is(err, service.ErrTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "templates have different types"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Reconcile 활성 버전 정합성 점검
func (h *TemplateHandler) Reconcile(c *gin.Context) {
	violations, err := h.templateService.ReconcileActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": violations, "ok": len(violations) == 0})
}

// optionalFundID fund_id 쿼리 파라미터를 파싱한다. 없으면 전역 범위.
func optionalFundID(c *gin.Context) (*uint, bool) {
	raw := c.Query("fund_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund_id"})
		return nil, false
	}
	fundID := uint(id)
	return &fundID, true
}
