package handler

import (
	"errors"
	"net/http"

	"github.com/fundops/backoffice/internal/service"
	"github.com/gin-gonic/gin"
)

// FundHandler 조합·조합원 Handler
type FundHandler struct {
	fundService service.FundService
}

// NewFundHandler Handler 생성
func NewFundHandler(fundService service.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// Create 조합 등록
func (h *FundHandler) Create(c *gin.Context) {
	var req service.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fund, err := h.fundService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": fund})
}

// List 조합 목록
func (h *FundHandler) List(c *gin.Context) {
	funds, err := h.fundService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": funds})
}

// Get 조합 조회
func (h *FundHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	fund, err := h.fundService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fund})
}

// Delete 조합 삭제
func (h *FundHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.fundService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// AddMember 조합원 등록
func (h *FundHandler) AddMember(c *gin.Context) {
	fundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FundID = fundID

	member, err := h.fundService.AddMember(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrFundNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "fund not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": member})
}

// ListMembers 조합원 명부
func (h *FundHandler) ListMembers(c *gin.Context) {
	fundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.fundService.ListMembers(c.Request.Context(), fundID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": members})
}

// RemoveMember 조합원 삭제
func (h *FundHandler) RemoveMember(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	if err := h.fundService.RemoveMember(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
