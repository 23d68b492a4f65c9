package booking

import (
	"context"
	"testing"
	"time"

	"wastebooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountBySlot(ctx context.Context, municipality string, date domain.Date, slot domain.Slot) (int64, error) {
	args := m.Called(ctx, municipality, date, slot)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) AppendStatus(ctx context.Context, bookingID int64, status domain.Status, at time.Time) error {
	args := m.Called(ctx, bookingID, status, at)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByMunicipalityAndDate(ctx context.Context, municipality string, date domain.Date) ([]domain.Booking, error) {
	args := m.Called(ctx, municipality, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByDateRange(ctx context.Context, from, to domain.Date) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockMunicipalityValidator struct {
	mock.Mock
}

func (m *MockMunicipalityValidator) IsValid(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Municipality:   "LISBOA",
		Description:    "Old sofa and a broken fridge",
		CollectionDate: domain.Today(),
		TimeSlot:       "MORNING",
		ContactInfo:    "citizen@example.com",
		Address:        "Rua Augusta 1",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").Return(true, nil)
	mockBookings.On("CountBySlot", mock.Anything, "LISBOA", mock.Anything, domain.SlotMorning).Return(int64(0), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	b, err := service.CreateBooking(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, domain.StatusReceived, b.Status)
	assert.Len(t, b.History, 1)
	assert.Equal(t, domain.StatusReceived, b.History[0].Status)
	assert.Regexp(t, `^[A-Z0-9]{20}$`, b.Token)
	mockBookings.AssertExpectations(t)
}

func TestCreateBooking_BoundaryDatesSucceed(t *testing.T) {
	for _, date := range []domain.Date{domain.Today(), domain.Today().AddDays(14)} {
		mockBookings := new(MockBookingRepository)
		mockMunicipalities := new(MockMunicipalityValidator)

		mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").Return(true, nil)
		mockBookings.On("CountBySlot", mock.Anything, "LISBOA", mock.Anything, domain.SlotMorning).Return(int64(0), nil)
		mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

		req := validRequest()
		req.CollectionDate = date
		_, err := service.CreateBooking(context.Background(), req)
		assert.NoError(t, err, "date %s", date)
	}
}

func TestCreateBooking_PastDate(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)
	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	req := validRequest()
	req.CollectionDate = domain.Today().AddDays(-1)

	_, err := service.CreateBooking(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Booking date cannot be in the past", err.Error())
	mockMunicipalities.AssertNotCalled(t, "IsValid", mock.Anything, mock.Anything)
}

func TestCreateBooking_TooFarAhead(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)
	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	req := validRequest()
	req.CollectionDate = domain.Today().AddDays(15)

	_, err := service.CreateBooking(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Can only book 2 weeks ahead", err.Error())
}

func TestCreateBooking_UnknownMunicipality(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "ATLANTIS").Return(false, nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	req := validRequest()
	req.Municipality = "ATLANTIS"

	_, err := service.CreateBooking(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Invalid municipality code: ATLANTIS", err.Error())
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_MunicipalitySourceDown(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").
		Return(false, domain.Errorf(domain.ErrFetch, "Unable to fetch municipality list"))

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	_, err := service.CreateBooking(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Invalid municipality code: LISBOA", err.Error())
}

func TestCreateBooking_InvalidSlot(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)
	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	req := validRequest()
	req.TimeSlot = "MIDNIGHT"

	_, err := service.CreateBooking(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateBooking_SlotFull(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").Return(true, nil)
	mockBookings.On("CountBySlot", mock.Anything, "LISBOA", mock.Anything, domain.SlotMorning).Return(int64(15), nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	_, err := service.CreateBooking(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacity)
	assert.Contains(t, err.Error(), "LISBOA")
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_LastFreeSpotSucceeds(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").Return(true, nil)
	mockBookings.On("CountBySlot", mock.Anything, "LISBOA", mock.Anything, domain.SlotMorning).Return(int64(14), nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	_, err := service.CreateBooking(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestGetBookingByToken_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockBookings.On("GetByToken", mock.Anything, "AAAAAAAAAAAAAAAAAAAA").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	_, err := service.GetBookingByToken(context.Background(), "AAAAAAAAAAAAAAAAAAAA")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No booking found under token: AAAAAAAAAAAAAAAAAAAA", err.Error())
}

func TestCancelBooking_Received(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	b := domain.NewBooking("LISBOA", "cardboard", domain.Today(), domain.SlotMorning, "", "")
	b.ID = 7
	b.Token = "ABCDEF1234ABCDEF1234"

	mockBookings.On("GetByToken", mock.Anything, b.Token).Return(b, nil)
	mockBookings.On("AppendStatus", mock.Anything, int64(7), domain.StatusCancelled, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	err := service.CancelBookingByToken(context.Background(), b.Token)

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
}

func TestCancelBooking_Completed(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	b := domain.NewBooking("LISBOA", "cardboard", domain.Today(), domain.SlotMorning, "", "")
	b.ID = 7
	b.Token = "ABCDEF1234ABCDEF1234"
	b.AddStatusHistory(domain.StatusAssigned)
	b.AddStatusHistory(domain.StatusInProgress)
	b.AddStatusHistory(domain.StatusCompleted)

	mockBookings.On("GetByToken", mock.Anything, b.Token).Return(b, nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	err := service.CancelBookingByToken(context.Background(), b.Token)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot cancel booking in status: COMPLETED", err.Error())
	mockBookings.AssertNotCalled(t, "AppendStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_Valid(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	tok := "ABCDEF1234ABCDEF1234"

	before := domain.NewBooking("PORTO", "garden waste", domain.Today(), domain.SlotAfternoon, "", "")
	before.ID = 3
	before.Token = tok

	after := domain.NewBooking("PORTO", "garden waste", domain.Today(), domain.SlotAfternoon, "", "")
	after.ID = 3
	after.Token = tok
	after.AddStatusHistory(domain.StatusAssigned)

	mockBookings.On("GetByToken", mock.Anything, tok).Return(before, nil).Once()
	mockBookings.On("AppendStatus", mock.Anything, int64(3), domain.StatusAssigned, mock.Anything).Return(nil)
	mockBookings.On("GetByToken", mock.Anything, tok).Return(after, nil).Once()

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	updated, err := service.UpdateBookingStatus(context.Background(), tok, domain.StatusAssigned)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, updated.Status)
	assert.Len(t, updated.History, 2)
	mockBookings.AssertExpectations(t)
}

func TestUpdateBookingStatus_Invalid(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	tok := "ABCDEF1234ABCDEF1234"
	b := domain.NewBooking("PORTO", "garden waste", domain.Today(), domain.SlotAfternoon, "", "")
	b.ID = 3
	b.Token = tok

	mockBookings.On("GetByToken", mock.Anything, tok).Return(b, nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	_, err := service.UpdateBookingStatus(context.Background(), tok, domain.StatusCompleted)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Cannot update booking status RECEIVED to status COMPLETED", err.Error())
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockMunicipalities := new(MockMunicipalityValidator)

	mockMunicipalities.On("IsValid", mock.Anything, "LISBOA").Return(true, nil)
	mockBookings.On("CountBySlot", mock.Anything, "LISBOA", mock.Anything, domain.SlotMorning).Return(int64(0), nil)

	var stored *domain.Booking
	mockBookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Booking)
	}).Return(nil)

	service := NewService(mockBookings, mockMunicipalities, DefaultSlotCapacity)

	created, err := service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, stored)

	mockBookings.On("GetByToken", mock.Anything, created.Token).Return(stored, nil)

	got, err := service.GetBookingByToken(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Token, got.Token)
	assert.Equal(t, got.Status, got.History[len(got.History)-1].Status)
}
