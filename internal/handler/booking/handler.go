package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/service/booking"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

type SelectDoctorRequest struct {
	DoctorID int `json:"doctor_id" binding:"required,min=1"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectTimeRequest struct {
	TimeSlot string `json:"time_slot" binding:"required"`
}

type SetModalityRequest struct {
	Modality model.Modality `json:"modality" binding:"required,oneof=video in-person"`
}

type SetNotesRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("/options", h.GetOptions)

		sessions := bookings.Group("/sessions")
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/open", h.OpenSession)
		sessions.POST("/:id/close", h.CloseSession)
		sessions.PUT("/:id/doctor", h.SelectDoctor)
		sessions.PUT("/:id/date", h.SelectDate)
		sessions.PUT("/:id/time", h.SelectTime)
		sessions.PUT("/:id/modality", h.SetModality)
		sessions.PUT("/:id/notes", h.SetNotes)
		sessions.POST("/:id/confirm", h.Confirm)
	}
}

func (h *Handler) GetOptions(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Options())
}

func (h *Handler) CreateSession(c *gin.Context) {
	state, err := h.service.Create(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, state)
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.service.Get(c.Request.Context(), id)
	respond(c, state, err)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"id": id})
}

func (h *Handler) OpenSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.service.Open(c.Request.Context(), id)
	respond(c, state, err)
}

func (h *Handler) CloseSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.service.Close(c.Request.Context(), id)
	respond(c, state, err)
}

func (h *Handler) SelectDoctor(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	state, err := h.service.SelectDoctor(c.Request.Context(), id, req.DoctorID)
	respond(c, state, err)
}

func (h *Handler) SelectDate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	state, err := h.service.SelectDate(c.Request.Context(), id, req.Date)
	respond(c, state, err)
}

func (h *Handler) SelectTime(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	state, err := h.service.SelectTime(c.Request.Context(), id, req.TimeSlot)
	respond(c, state, err)
}

func (h *Handler) SetModality(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SetModalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	state, err := h.service.SetModality(c.Request.Context(), id, req.Modality)
	respond(c, state, err)
}

func (h *Handler) SetNotes(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
		return
	}
	state, err := h.service.SetNotes(c.Request.Context(), id, req.Notes)
	respond(c, state, err)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	booking, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, booking)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

func respond(c *gin.Context, state model.SessionState, err error) {
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, state)
}
