package booking

import (
	"net/http"

	"wastebooking/internal/domain"
	"wastebooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// staffListWindowDays is the default triage window when staff list bookings
// without a filter: one week back, two weeks ahead.
const staffListWindowDays = 7

// StaffHandler serves the staff triage endpoints. Routes are registered on a
// JWT-protected group.
type StaffHandler struct {
	service *Service
}

func NewStaffHandler(service *Service) *StaffHandler {
	return &StaffHandler{service: service}
}

func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.PATCH("/bookings/:token/update", h.UpdateBookingStatus)
}

// ListBookings supports three shapes: ?municipality=&date=, ?status=, or no
// filter at all (recent window).
func (h *StaffHandler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()

	if municipality := c.Query("municipality"); municipality != "" {
		date, err := domain.ParseDate(c.Query("date"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date: "+c.Query("date"))
			return
		}
		bookings, err := h.service.GetBookingsByMunicipalityByDate(ctx, municipality, date)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, toResponses(bookings))
		return
	}

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status value: "+raw)
			return
		}
		bookings, err := h.service.GetBookingsByStatus(ctx, status)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, toResponses(bookings))
		return
	}

	today := domain.Today()
	bookings, err := h.service.GetBookingsByDateRange(ctx,
		today.AddDays(-staffListWindowDays),
		today.AddDays(maxAdvanceDays))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponses(bookings))
}

func (h *StaffHandler) UpdateBookingStatus(c *gin.Context) {
	raw := c.Query("newStatus")
	newStatus, err := domain.ParseStatus(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status value: "+raw)
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), c.Param("token"), newStatus)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(b))
}
