package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotel-booking/controllers"
	"hotel-booking/models"
	"hotel-booking/policy"
	"hotel-booking/routes"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) List(ctx context.Context, f services.BookingFilter) (models.BookingPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.BookingPage), args.Error(1)
}

func (m *MockBookingStore) Get(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) Update(ctx context.Context, id uint, patch services.BookingPatch) (*models.Booking, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingStore) AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, exclude *uint) ([]models.Room, error) {
	args := m.Called(ctx, roomTypeID, checkIn, checkOut, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

type MockRoomCatalog struct {
	mock.Mock
}

func (m *MockRoomCatalog) List(ctx context.Context, roomTypeID *uint) ([]models.Room, error) {
	args := m.Called(ctx, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomCatalog) ListTypes(ctx context.Context) ([]models.RoomType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomType), args.Error(1)
}

func setupRouter(store *MockBookingStore, catalog *MockRoomCatalog, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := utils.DiscardLogger()
	return routes.SetupRouter(
		controllers.NewBookingController(store, log),
		controllers.NewRoomController(catalog, log),
		routes.Options{AdminToken: token, Log: log},
	)
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error.Code
}

func uintPtr(v uint) *uint { return &v }

func TestGetBookings(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	want := services.BookingFilter{Status: "pending", Search: "smith", FromDate: &from, Page: 2, Limit: 5}
	store.On("List", mock.Anything, want).Return(models.BookingPage{
		Data:  []models.Booking{{ID: 42, Status: models.StatusPending}},
		Page:  2,
		Limit: 5,
		Total: 6,
	}, nil)

	rec := do(r, http.MethodGet, "/api/bookings?status=pending&search=smith&from_date=2024-06-01&page=2&limit=5", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var page models.BookingPage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, int64(6), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, uint(42), page.Data[0].ID)
	store.AssertExpectations(t)
}

func TestGetBookings_InvalidFromDate(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")

	rec := do(r, http.MethodGet, "/api/bookings?from_date=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.invalidDate", errorCode(t, rec))
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetBooking(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockReturn     *models.Booking
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "found",
			path:           "/api/bookings/42",
			mockReturn:     &models.Booking{ID: 42},
			expectedStatus: http.StatusOK,
			shouldCallMock: true,
		},
		{
			name:           "not found",
			path:           "/api/bookings/42",
			mockError:      services.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
		{
			name:           "non numeric id",
			path:           "/api/bookings/abc",
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockBookingStore)
			r := setupRouter(store, new(MockRoomCatalog), "")
			if tt.shouldCallMock {
				store.On("Get", mock.Anything, uint(42)).Return(tt.mockReturn, tt.mockError)
			}

			rec := do(r, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			store.AssertExpectations(t)
		})
	}
}

func TestUpdateBooking_Success(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")

	confirmed := models.StatusConfirmed
	paid := true
	patch := services.BookingPatch{Status: &confirmed, RoomSet: true, RoomID: uintPtr(101), IsPaid: &paid}
	store.On("Update", mock.Anything, uint(42), patch).Return(&models.Booking{
		ID:     42,
		Status: models.StatusConfirmed,
		RoomID: uintPtr(101),
		IsPaid: true,
	}, nil)

	rec := do(r, http.MethodPut, "/api/bookings/42", map[string]interface{}{
		"status":  "confirmed",
		"room_id": 101,
		"is_paid": true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, models.StatusConfirmed, got.Status)
	store.AssertExpectations(t)
}

func TestUpdateBooking_Errors(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{"conflict", policy.NewError(policy.KindConflictingAssignment, "room 101 taken", nil), http.StatusConflict, "error.conflictingAssignment"},
		{"missing room", policy.ErrMissingRoomAssignment, http.StatusUnprocessableEntity, "error.missingRoomAssignment"},
		{"bad transition", policy.ErrInvalidTransition, http.StatusUnprocessableEntity, "error.invalidTransition"},
		{"not found", services.ErrBookingNotFound, http.StatusNotFound, "error.bookingNotFound"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "error.internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockBookingStore)
			r := setupRouter(store, new(MockRoomCatalog), "")
			store.On("Update", mock.Anything, uint(42), mock.AnythingOfType("services.BookingPatch")).Return(nil, tt.mockError)

			rec := do(r, http.MethodPut, "/api/bookings/42", map[string]interface{}{"status": "confirmed"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, rec))
		})
	}
}

func TestUpdateBooking_InvalidPayload(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")

	rec := do(r, http.MethodPut, "/api/bookings/42", map[string]interface{}{"status": "archived"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.invalidPayload", errorCode(t, rec))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteBooking(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")
	store.On("Delete", mock.Anything, uint(7)).Return(nil)

	rec := do(r, http.MethodDelete, "/api/bookings/7", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

func TestGetAvailableRooms(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "")

	checkIn := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	store.On("AvailableRooms", mock.Anything, uint(3), checkIn, checkOut, uintPtr(42)).
		Return([]models.Room{{ID: 101, RoomNumber: "101", RoomTypeID: 3, IsActive: true}}, nil)

	rec := do(r, http.MethodGet,
		"/api/bookings/available-rooms?room_type_id=3&check_in_date=2024-06-05&check_out_date=2024-06-08&exclude_booking_id=42", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AvailableRooms []models.Room `json:"available_rooms"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.AvailableRooms, 1)
	assert.Equal(t, "101", resp.AvailableRooms[0].RoomNumber)
	store.AssertExpectations(t)
}

func TestGetAvailableRooms_BadInput(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockError      error
		expectedStatus int
	}{
		{"missing room type", "check_in_date=2024-06-05&check_out_date=2024-06-08", nil, http.StatusBadRequest},
		{"bad date", "room_type_id=3&check_in_date=soon&check_out_date=2024-06-08", nil, http.StatusBadRequest},
		{"inverted range", "room_type_id=3&check_in_date=2024-06-08&check_out_date=2024-06-05", policy.ErrInvalidDateRange, http.StatusBadRequest},
		{"unknown room type", "room_type_id=99&check_in_date=2024-06-05&check_out_date=2024-06-08", services.ErrRoomTypeNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockBookingStore)
			r := setupRouter(store, new(MockRoomCatalog), "")
			if tt.mockError != nil {
				store.On("AvailableRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, tt.mockError)
			}

			rec := do(r, http.MethodGet, "/api/bookings/available-rooms?"+tt.query, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			store.AssertExpectations(t)
		})
	}
}

func TestBearerGuard(t *testing.T) {
	store := new(MockBookingStore)
	r := setupRouter(store, new(MockRoomCatalog), "s3cret")
	store.On("Get", mock.Anything, uint(1)).Return(&models.Booking{ID: 1}, nil)

	rec := do(r, http.MethodGet, "/api/bookings/1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/1", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	ok := httptest.NewRecorder()
	r.ServeHTTP(ok, req)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.NotEmpty(t, ok.Header().Get("X-Request-ID"))

	health := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}
