package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petmily/petmily-v2/backend/internal/middleware"
	"github.com/petmily/petmily-v2/backend/internal/service"
	"github.com/petmily/petmily-v2/backend/internal/types"
)

// Analyzer is the slice of the analysis service the handlers use.
type Analyzer interface {
	AnalyzeFood(ctx context.Context, req service.AnalyzeRequest) (*types.AnalysisResult, error)
	AnalyzeStool(ctx context.Context, req service.AnalyzeRequest) (*types.AnalysisResult, error)
	AnalyzeFoodPackage(ctx context.Context, req service.AnalyzeRequest) (*types.AnalysisResult, error)
	Confirm(ctx context.Context, id string) (*types.AnalysisResult, error)
	Discard(ctx context.Context, id string) error
}

// AnalysisHandler handles the photo analysis endpoints.
type AnalysisHandler struct {
	analyzer     Analyzer
	adminKeyHash string
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(analyzer Analyzer, adminKeyHash string) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, adminKeyHash: adminKeyHash}
}

// RegisterRoutes registers the analysis routes.
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	analyses := router.Group("/analyses")
	{
		analyses.POST("/food", h.AnalyzeFood)
		analyses.POST("/stool", h.AnalyzeStool)
		analyses.POST("/food-package", h.AnalyzeFoodPackage)

		gate := middleware.AdminGate(h.adminKeyHash)
		analyses.POST("/:id/confirm", gate, h.Confirm)
		analyses.DELETE("/:id", gate, h.Discard)
	}
}

func (h *AnalysisHandler) bind(c *gin.Context) (service.AnalyzeRequest, bool) {
	var req AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errEnvelope("invalid request body: "+err.Error()))
		return service.AnalyzeRequest{}, false
	}
	return service.AnalyzeRequest{
		ImageBase64: req.Image,
		MimeType:    req.MimeType,
		Hints: types.AnalysisHints{
			FoodName:    req.FoodName,
			FoodAmountG: req.FoodAmountG,
			AnimalType:  req.AnimalType,
			FoodType:    req.FoodType,
		},
		Persist: req.Persist,
	}, true
}

// AnalyzeFood handles POST /analyses/food.
func (h *AnalysisHandler) AnalyzeFood(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.analyzer.AnalyzeFood(c.Request.Context(), req)
	h.respond(c, result, err)
}

// AnalyzeStool handles POST /analyses/stool.
func (h *AnalysisHandler) AnalyzeStool(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.analyzer.AnalyzeStool(c.Request.Context(), req)
	h.respond(c, result, err)
}

// AnalyzeFoodPackage handles POST /analyses/food-package.
func (h *AnalysisHandler) AnalyzeFoodPackage(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.analyzer.AnalyzeFoodPackage(c.Request.Context(), req)
	h.respond(c, result, err)
}

// Confirm handles POST /analyses/:id/confirm.
func (h *AnalysisHandler) Confirm(c *gin.Context) {
	result, err := h.analyzer.Confirm(c.Request.Context(), c.Param("id"))
	h.respond(c, result, err)
}

// Discard handles DELETE /analyses/:id.
func (h *AnalysisHandler) Discard(c *gin.Context) {
	if err := h.analyzer.Discard(c.Request.Context(), c.Param("id")); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope(gin.H{"discarded": true}))
}

func (h *AnalysisHandler) respond(c *gin.Context, result *types.AnalysisResult, err error) {
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope(result))
}

func (h *AnalysisHandler) respondErr(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.Printf("[api] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, errEnvelope(err.Error()))
}

// statusFor maps the pipeline failure taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrModelRefusal):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrParse),
		errors.Is(err, service.ErrInvalidModelOutput),
		errors.Is(err, service.ErrIncompleteBilingual):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
