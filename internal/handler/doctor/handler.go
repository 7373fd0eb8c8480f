package doctor

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/care-api/internal/service/search"
	"github.com/jwalitptl/care-api/pkg/httputil"
)

type Handler struct {
	service *search.Service
}

func NewHandler(service *search.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.SearchDoctors)
		doctors.GET("/specialties", h.ListSpecialties)
		doctors.GET("/:id", h.GetDoctor)
	}
}

func (h *Handler) SearchDoctors(c *gin.Context) {
	var in search.CriteriaInput
	if err := c.ShouldBindQuery(&in); err != nil {
		httputil.RespondWithBadRequest(c, "invalid search parameters")
		return
	}

	criteria, err := search.ParseCriteria(in)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, h.service.Search(c.Request.Context(), criteria, in.Expanded))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid doctor ID")
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Specialties())
}
