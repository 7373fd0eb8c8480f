package preference

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/service/preference"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/httputil"
)

type Handler struct {
	service *preference.Service
}

func NewHandler(service *preference.Service) *Handler {
	return &Handler{service: service}
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type LanguageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prefs := r.Group("/preferences")
	{
		prefs.GET("/language", h.GetLanguage)
		prefs.PUT("/language", h.SetLanguage)
	}
}

func (h *Handler) GetLanguage(c *gin.Context) {
	lang, err := h.service.GetLanguage(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, LanguageResponse{Language: lang, Supported: model.SupportedLanguages})
}

func (h *Handler) SetLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	if err := h.service.SetLanguage(c.Request.Context(), req.Language); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, LanguageResponse{Language: req.Language, Supported: model.SupportedLanguages})
}
