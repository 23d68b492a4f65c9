package booking

import (
	"time"

	"wastebooking/internal/domain"
)

type CreateBookingRequest struct {
	Municipality   string      `json:"municipality" binding:"required"`
	Description    string      `json:"description" binding:"required,max=500"`
	CollectionDate domain.Date `json:"collectionDate" binding:"required"`
	TimeSlot       string      `json:"timeSlot" binding:"required"`
	ContactInfo    string      `json:"contactInfo" binding:"max=100"`
	Address        string      `json:"address" binding:"max=200"`
}

type StatusHistoryResponse struct {
	Status    domain.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

type BookingResponse struct {
	Token        string                  `json:"token"`
	Municipality string                  `json:"municipality"`
	Description  string                  `json:"description"`
	Date         domain.Date             `json:"date"`
	Slot         domain.Slot             `json:"slot"`
	Status       domain.Status           `json:"status"`
	ContactInfo  string                  `json:"contactInfo,omitempty"`
	Address      string                  `json:"address,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	History      []StatusHistoryResponse `json:"history"`
}

func toResponse(b *domain.Booking) BookingResponse {
	history := make([]StatusHistoryResponse, 0, len(b.History))
	for _, h := range b.History {
		history = append(history, StatusHistoryResponse{Status: h.Status, Timestamp: h.Timestamp})
	}

	return BookingResponse{
		Token:        b.Token,
		Municipality: b.Municipality,
		Description:  b.Description,
		Date:         b.CollectionDate,
		Slot:         b.TimeSlot,
		Status:       b.Status,
		ContactInfo:  b.ContactInfo,
		Address:      b.Address,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		History:      history,
	}
}

func toResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toResponse(&bookings[i]))
	}
	return out
}
