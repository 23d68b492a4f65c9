package domain

import "time"

// Booking is a citizen's waste-collection request. It is created with status
// RECEIVED and one matching history entry, and is only ever mutated through
// status transitions. Bookings are never deleted; cancellation is a terminal
// status.
type Booking struct {
	ID             int64
	Token          string
	Municipality   string
	Description    string
	CollectionDate Date
	TimeSlot       Slot
	Status         Status
	ContactInfo    string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// History holds every status the booking has been through, oldest
	// first. The current status always equals the last entry.
	History []StatusHistory
}

// StatusHistory is one immutable (status, timestamp) entry of a booking's log.
type StatusHistory struct {
	ID        int64
	BookingID int64
	Status    Status
	Timestamp time.Time
}

func NewBooking(municipality, description string, date Date, slot Slot, contactInfo, address string) *Booking {
	now := time.Now()
	return &Booking{
		Municipality:   municipality,
		Description:    description,
		CollectionDate: date,
		TimeSlot:       slot,
		Status:         StatusReceived,
		ContactInfo:    contactInfo,
		Address:        address,
		CreatedAt:      now,
		UpdatedAt:      now,
		History: []StatusHistory{
			{Status: StatusReceived, Timestamp: now},
		},
	}
}

// AddStatusHistory appends a history entry and moves the booking to the new
// status. Callers must have checked CanTransition first.
func (b *Booking) AddStatusHistory(next Status) {
	now := time.Now()
	b.History = append(b.History, StatusHistory{
		BookingID: b.ID,
		Status:    next,
		Timestamp: now,
	})
	b.Status = next
	b.UpdatedAt = now
}

func (b *Booking) IsCancellable() bool {
	return b.Status.CanTransition(StatusCancelled)
}
