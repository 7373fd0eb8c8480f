package vitals

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/service/vitals"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/httputil"
)

type Handler struct {
	service *vitals.Service
}

func NewHandler(service *vitals.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	v := r.Group("/vitals")
	{
		v.GET("/kinds", h.ListKinds)
		v.GET("/overview", h.Overview)
		v.GET("/readings", h.ListReadings)
		v.POST("/readings", h.AddReading)
		v.GET("/:kind/latest", h.Latest)
		v.GET("/:kind/trend", h.Trend)
	}
}

func (h *Handler) ListKinds(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Kinds())
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, overview)
}

func (h *Handler) ListReadings(c *gin.Context) {
	readings, err := h.service.Recent(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, readings)
}

func (h *Handler) AddReading(c *gin.Context) {
	var req model.AddReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}

	record, err := h.service.AddReading(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, record)
}

func (h *Handler) Latest(c *gin.Context) {
	kind, ok := vitalKind(c)
	if !ok {
		return
	}
	latest, err := h.service.Latest(c.Request.Context(), kind)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	// A kind without readings answers with a null latest.
	httputil.RespondWithSuccess(c, gin.H{"kind": kind, "latest": latest})
}

func (h *Handler) Trend(c *gin.Context) {
	kind, ok := vitalKind(c)
	if !ok {
		return
	}
	trend, err := h.service.Trend(c.Request.Context(), kind)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"kind": kind, "trend": trend})
}

func vitalKind(c *gin.Context) (model.VitalKind, bool) {
	kind, err := model.ParseVitalKind(c.Param("kind"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("vital type", err))
		return "", false
	}
	return kind, true
}
