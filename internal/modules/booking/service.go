package booking

import (
	"context"
	"errors"
	"regexp"
	"time"

	"wastebooking/internal/domain"
	"wastebooking/internal/pkg/token"
	"wastebooking/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultSlotCapacity is the ceiling of bookings per
// (municipality, date, slot) triple.
const DefaultSlotCapacity = 15

// maxAdvanceDays bounds how far ahead citizens may book.
const maxAdvanceDays = 14

var tokenPattern = regexp.MustCompile(`^[A-Z0-9]{20}$`)

type Service struct {
	bookings       BookingRepository
	municipalities MunicipalityValidator
	slotCapacity   int64
}

func NewService(bookings BookingRepository, municipalities MunicipalityValidator, slotCapacity int64) *Service {
	if slotCapacity <= 0 {
		slotCapacity = DefaultSlotCapacity
	}
	return &Service{
		bookings:       bookings,
		municipalities: municipalities,
		slotCapacity:   slotCapacity,
	}
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	slot, err := domain.ParseSlot(req.TimeSlot)
	if err != nil {
		return nil, domain.Errorf(domain.ErrValidation, "Invalid time slot: %s", req.TimeSlot)
	}

	if err := s.validateBookingDate(req.CollectionDate); err != nil {
		return nil, err
	}
	if err := s.validateMunicipality(ctx, req.Municipality); err != nil {
		return nil, err
	}

	ok, err := s.hasCapacity(ctx, req.Municipality, req.CollectionDate, slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Errorf(domain.ErrCapacity,
			"No capacity available for selected date and time slot for %s", req.Municipality)
	}

	b := domain.NewBooking(req.Municipality, req.Description, req.CollectionDate, slot, req.ContactInfo, req.Address)
	b.Token = token.New()

	if err := s.bookings.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Errorf(domain.ErrValidation, "Booking token collision, please retry")
		}
		return nil, err
	}

	logrus.WithField("token", b.Token).Info("booking created")
	return b, nil
}

func (s *Service) GetBookingByToken(ctx context.Context, tok string) (*domain.Booking, error) {
	b, err := s.bookings.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "No booking found under token: %s", tok)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) CancelBookingByToken(ctx context.Context, tok string) error {
	b, err := s.GetBookingByToken(ctx, tok)
	if err != nil {
		return err
	}

	if !b.Status.CanTransition(domain.StatusCancelled) {
		return domain.Errorf(domain.ErrInvalidTransition, "Cannot cancel booking in status: %s", b.Status)
	}

	if err := s.bookings.AppendStatus(ctx, b.ID, domain.StatusCancelled, time.Now()); err != nil {
		return err
	}

	logrus.WithField("token", sanitizeForLog(tok)).Info("booking cancelled")
	return nil
}

func (s *Service) UpdateBookingStatus(ctx context.Context, tok string, newStatus domain.Status) (*domain.Booking, error) {
	b, err := s.GetBookingByToken(ctx, tok)
	if err != nil {
		return nil, err
	}

	if !b.Status.CanTransition(newStatus) {
		return nil, domain.Errorf(domain.ErrInvalidTransition,
			"Cannot update booking status %s to status %s", b.Status, newStatus)
	}

	if err := s.bookings.AppendStatus(ctx, b.ID, newStatus, time.Now()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"token":  sanitizeForLog(tok),
		"status": newStatus,
	}).Info("booking status updated")

	return s.GetBookingByToken(ctx, tok)
}

func (s *Service) GetBookingsByStatus(ctx context.Context, status domain.Status) ([]domain.Booking, error) {
	return s.bookings.FindByStatus(ctx, status)
}

func (s *Service) GetBookingsByMunicipalityByDate(ctx context.Context, municipality string, date domain.Date) ([]domain.Booking, error) {
	return s.bookings.FindByMunicipalityAndDate(ctx, municipality, date)
}

func (s *Service) GetBookingsByDateRange(ctx context.Context, from, to domain.Date) ([]domain.Booking, error) {
	return s.bookings.FindByDateRange(ctx, from, to)
}

func (s *Service) validateBookingDate(date domain.Date) error {
	today := domain.Today()

	if date.Before(today.Time) {
		return domain.Errorf(domain.ErrValidation, "Booking date cannot be in the past")
	}
	if date.After(today.AddDays(maxAdvanceDays).Time) {
		return domain.Errorf(domain.ErrValidation, "Can only book 2 weeks ahead")
	}
	return nil
}

func (s *Service) validateMunicipality(ctx context.Context, code string) error {
	ok, err := s.municipalities.IsValid(ctx, code)
	if err != nil {
		// source unreachable: the code cannot be confirmed, so the
		// request is rejected as a validation failure
		logrus.WithError(err).Warn("municipality validation degraded")
		return domain.Errorf(domain.ErrValidation, "Invalid municipality code: %s", code)
	}
	if !ok {
		return domain.Errorf(domain.ErrValidation, "Invalid municipality code: %s", code)
	}
	return nil
}

// hasCapacity counts bookings already holding the triple. The count and the
// subsequent insert are separate statements, so concurrent requests can
// briefly overshoot the ceiling.
func (s *Service) hasCapacity(ctx context.Context, municipality string, date domain.Date, slot domain.Slot) (bool, error) {
	count, err := s.bookings.CountBySlot(ctx, municipality, date, slot)
	if err != nil {
		return false, err
	}
	return count < s.slotCapacity, nil
}

// sanitizeForLog keeps log lines free of unvalidated citizen input.
func sanitizeForLog(tok string) string {
	if tokenPattern.MatchString(tok) {
		return tok
	}
	return "[INVALID_TOKEN_FORMAT]"
}
