package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundops/backoffice/internal/model"
	"github.com/fundops/backoffice/internal/pkg/treediff"
	"github.com/fundops/backoffice/internal/service"
)

// mockTemplateService 함수 필드 기반 목
type mockTemplateService struct {
	createFn        func(context.Context, service.CreateTemplateRequest) (*model.DocumentTemplate, error)
	getFn           func(context.Context, uint) (*model.DocumentTemplate, error)
	activateFn      func(context.Context, uint) error
	resolveActiveFn func(context.Context, string, *uint) (*model.DocumentTemplate, error)
	listVersionsFn  func(context.Context, string, *uint) ([]model.DocumentTemplate, error)
	diffFn          func(context.Context, uint, uint) (*treediff.Result, error)
	reconcileFn     func(context.Context) ([]service.ScopeViolation, error)
}

func (m *mockTemplateService) Create(ctx context.Context, req service.CreateTemplateRequest) (*model.DocumentTemplate, error) {
	return m.createFn(ctx, req)
}
func (m *mockTemplateService) Get(ctx context.Context, id uint) (*model.DocumentTemplate, error) {
	return m.getFn(ctx, id)
}
func (m *mockTemplateService) Activate(ctx context.Context, id uint) error {
	return m.activateFn(ctx, id)
}
func (m *mockTemplateService) ResolveActive(ctx context.Context, docType string, fundID *uint) (*model.DocumentTemplate, error) {
	return m.resolveActiveFn(ctx, docType, fundID)
}
func (m *mockTemplateService) ListVersions(ctx context.Context, docType string, fundID *uint) ([]model.DocumentTemplate, error) {
	return m.listVersionsFn(ctx, docType, fundID)
}
func (m *mockTemplateService) Diff(ctx context.Context, oldID, newID uint) (*treediff.Result, error) {
	return m.diffFn(ctx, oldID, newID)
}
func (m *mockTemplateService) ReconcileActive(ctx context.Context) ([]service.ScopeViolation, error) {
	return m.reconcileFn(ctx)
}

func templateRouter(svc service.TemplateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(svc)
	r := gin.New()
	r.POST("/api/templates", h.Create)
	r.GET("/api/templates/active", h.ResolveActive)
	r.GET("/api/templates/diff", h.Diff)
	r.GET("/api/templates/:id", h.Get)
	r.POST("/api/templates/:id/activate", h.Activate)
	return r
}

func TestTemplateCreateHandler(t *testing.T) {
	svc := &mockTemplateService{
		createFn: func(ctx context.Context, req service.CreateTemplateRequest) (*model.DocumentTemplate, error) {
			assert.Equal(t, model.DocTypeAgreement, req.Type)
			assert.Equal(t, "v1", req.Version)
			return &model.DocumentTemplate{ID: 1, Type: req.Type, Version: req.Version}, nil
		},
	}
	body := `{"type":"agreement","version":"v1","content":"{\"sections\":[]}"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	templateRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"v1"`)
}

func TestTemplateCreateHandlerDuplicate(t *testing.T) {
	svc := &mockTemplateService{
		createFn: func(ctx context.Context, req service.CreateTemplateRequest) (*model.DocumentTemplate, error) {
			return nil, service.ErrVersionExists
		},
	}
	body := `{"type":"agreement","version":"v1","content":"{}"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	templateRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTemplateCreateHandlerBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(`{"version":"v1"}`))
	req.Header.Set("Content-Type", "application/json")
	templateRouter(&mockTemplateService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateResolveActiveHandler(t *testing.T) {
	svc := &mockTemplateService{
		resolveActiveFn: func(ctx context.Context, docType string, fundID *uint) (*model.DocumentTemplate, error) {
			require.NotNil(t, fundID)
			assert.Equal(t, uint(3), *fundID)
			return &model.DocumentTemplate{ID: 9, Type: docType, FundID: fundID, IsActive: true}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/templates/active?type=consent&fund_id=3", nil)
	templateRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":true`)
}

func TestTemplateResolveActiveHandlerMissingType(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/templates/active", nil)
	templateRouter(&mockTemplateService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateActivateHandlerNotFound(t *testing.T) {
	svc := &mockTemplateService{
		activateFn: func(ctx context.Context, id uint) error { return service.ErrTemplateNotFound },
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/templates/77/activate", nil)
	templateRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateDiffHandlerTypeMismatch(t *testing.T) {
	svc := &mockTemplateService{
		diffFn: func(ctx context.Context, oldID, newID uint) (*treediff.Result, error) {
			return nil, service.ErrTypeMismatch
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/templates/diff?old=1&new=2", nil)
	templateRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
