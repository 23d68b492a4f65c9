package booking

import (
	"context"
	"time"

	"wastebooking/internal/domain"
)

// BookingRepository defines the persistence operations the lifecycle service
// needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	CountBySlot(ctx context.Context, municipality string, date domain.Date, slot domain.Slot) (int64, error)
	AppendStatus(ctx context.Context, bookingID int64, status domain.Status, at time.Time) error
	FindByStatus(ctx context.Context, status domain.Status) ([]domain.Booking, error)
	FindByMunicipalityAndDate(ctx context.Context, municipality string, date domain.Date) ([]domain.Booking, error)
	FindByDateRange(ctx context.Context, from, to domain.Date) ([]domain.Booking, error)
}

// MunicipalityValidator checks citizen-supplied municipality codes against
// the cached external list.
type MunicipalityValidator interface {
	IsValid(ctx context.Context, code string) (bool, error)
}
