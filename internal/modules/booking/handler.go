package booking

import (
	"errors"
	"net/http"

	"wastebooking/internal/domain"
	"wastebooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler serves the citizen-facing booking endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:token", h.GetBooking)
	rg.DELETE("/bookings/:token", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(b))
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBookingByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(b))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	if err := h.service.CancelBookingByToken(c.Request.Context(), c.Param("token")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeServiceError maps the error taxonomy to HTTP statuses. Messages are
// passed through verbatim; "No booking found" failures are the only 404s.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrCapacity):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking request")
	}
}
