package repository

import (
	"context"
	"errors"
	"time"

	"wastebooking/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64                `gorm:"column:id;primaryKey"`
	Token          string               `gorm:"column:token;size:20;not null;uniqueIndex:idx_token"`
	Municipality   string               `gorm:"column:municipality;size:100;not null;index:idx_municipality_date"`
	Description    string               `gorm:"column:description;size:500;not null"`
	CollectionDate domain.Date          `gorm:"column:collection_date;type:date;not null;index:idx_municipality_date"`
	TimeSlot       string               `gorm:"column:time_slot;size:20;not null"`
	Status         string               `gorm:"column:status;size:20;not null"`
	ContactInfo    *string              `gorm:"column:contact_info;size:100"`
	Address        *string              `gorm:"column:address;size:200"`
	CreatedAt      time.Time            `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time            `gorm:"column:updated_at"`
	History        []statusHistoryModel `gorm:"foreignKey:BookingID"`
}

func (bookingModel) TableName() string { return "bookings" }

type statusHistoryModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;not null;index"`
	Status    string    `gorm:"column:status;size:20;not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}

func (statusHistoryModel) TableName() string { return "booking_status_history" }

// AutoMigrate creates the booking tables. Called from cmd wiring and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&bookingModel{}, &statusHistoryModel{})
}

func toDomainBooking(m bookingModel) *domain.Booking {
	var contactInfo, address string
	if m.ContactInfo != nil {
		contactInfo = *m.ContactInfo
	}
	if m.Address != nil {
		address = *m.Address
	}

	history := make([]domain.StatusHistory, 0, len(m.History))
	for _, h := range m.History {
		history = append(history, domain.StatusHistory{
			ID:        h.ID,
			BookingID: h.BookingID,
			Status:    domain.Status(h.Status),
			Timestamp: h.Timestamp,
		})
	}

	return &domain.Booking{
		ID:             m.ID,
		Token:          m.Token,
		Municipality:   m.Municipality,
		Description:    m.Description,
		CollectionDate: m.CollectionDate,
		TimeSlot:       domain.Slot(m.TimeSlot),
		Status:         domain.Status(m.Status),
		ContactInfo:    contactInfo,
		Address:        address,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		History:        history,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var contactInfo, address *string
	if b.ContactInfo != "" {
		v := b.ContactInfo
		contactInfo = &v
	}
	if b.Address != "" {
		v := b.Address
		address = &v
	}

	history := make([]statusHistoryModel, 0, len(b.History))
	for _, h := range b.History {
		history = append(history, statusHistoryModel{
			ID:        h.ID,
			BookingID: h.BookingID,
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
		})
	}

	return bookingModel{
		ID:             b.ID,
		Token:          b.Token,
		Municipality:   b.Municipality,
		Description:    b.Description,
		CollectionDate: b.CollectionDate,
		TimeSlot:       string(b.TimeSlot),
		Status:         string(b.Status),
		ContactInfo:    contactInfo,
		Address:        address,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		History:        history,
	}
}

// IsUniqueViolation reports whether err is a unique-constraint failure on
// either backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC, id ASC") }).
		Where("token = ?", token).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CountBySlot returns how many bookings already occupy the
// (municipality, date, slot) triple, cancelled ones included.
func (r *BookingRepository) CountBySlot(ctx context.Context, municipality string, date domain.Date, slot domain.Slot) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("municipality = ? AND collection_date = ? AND time_slot = ?", municipality, date, string(slot)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// AppendStatus records a transition: one new history row plus the booking's
// status and updated_at, committed together.
func (r *BookingRepository) AppendStatus(ctx context.Context, bookingID int64, status domain.Status, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := statusHistoryModel{
			BookingID: bookingID,
			Status:    string(status),
			Timestamp: at,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&bookingModel{}).
			Where("id = ?", bookingID).
			Updates(map[string]any{"status": string(status), "updated_at": at}).
			Error
	})
}

func (r *BookingRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC, id ASC") }).
		Where("status = ?", string(status)).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) FindByMunicipalityAndDate(ctx context.Context, municipality string, date domain.Date) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC, id ASC") }).
		Where("municipality = ? AND collection_date = ?", municipality, date).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

// FindByDateRange returns bookings with a collection date in [from, to],
// both ends inclusive.
func (r *BookingRepository) FindByDateRange(ctx context.Context, from, to domain.Date) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC, id ASC") }).
		Where("collection_date BETWEEN ? AND ?", from, to).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
