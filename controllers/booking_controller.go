// controllers/booking_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"hotel-booking/models"
	"hotel-booking/policy"
	"hotel-booking/services"
	"hotel-booking/utils"
)

// BookingStore is the part of services.BookingService the handlers use.
type BookingStore interface {
	List(ctx context.Context, f services.BookingFilter) (models.BookingPage, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, id uint, patch services.BookingPatch) (*models.Booking, error)
	Delete(ctx context.Context, id uint) error
	AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error)
}

type BookingController struct {
	BookingSvc BookingStore
	Log        logrus.FieldLogger
}

func NewBookingController(svc BookingStore, log logrus.FieldLogger) *BookingController {
	return &BookingController{BookingSvc: svc, Log: log}
}

// ---------------------------
// Helpers
// ---------------------------

func parseUintParam(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidBookingId", "bookingId must be a positive integer")
	}
	return id, ok
}

// isForeignKeyError detects MySQL error 1452 (child row FK violation).
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key") || strings.Contains(lower, "1452")
}

func (ctrl *BookingController) respondError(c *gin.Context, err error) {
	var pe *policy.Error
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case errors.Is(err, services.ErrRoomTypeNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.roomTypeNotFound", "room type not found")
	case errors.As(err, &pe):
		status := http.StatusUnprocessableEntity
		switch pe.Kind {
		case policy.KindConflictingAssignment:
			status = http.StatusConflict
		case policy.KindInvalidDateRange:
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, pe.Kind.Code(), pe.Message)
	case strings.HasPrefix(err.Error(), "validation"):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
	case isForeignKeyError(err):
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.foreignKey", "foreign key constraint", err.Error())
	default:
		ctrl.Log.WithError(err).WithField("path", c.Request.URL.Path).Error("booking request failed")
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

// ---------------------------
// GET /api/bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	f := services.BookingFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageLimit)))

	if raw := c.Query("from_date"); raw != "" {
		from, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error())
			return
		}
		f.FromDate = &from
	}

	page, err := ctrl.BookingSvc.List(c.Request.Context(), f)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ---------------------------
// GET /api/bookings/:id
// ---------------------------

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// PUT /api/bookings/:id
// ---------------------------

// UpdateBooking applies a partial {status?, room_id?, is_paid?} body as one
// combined change.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "Invalid request payload", err.Error())
		return
	}

	patch, err := services.ParseBookingPatch(body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	booking, err := ctrl.BookingSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// DELETE /api/bookings/:id
// ---------------------------

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking deleted"})
}

// ---------------------------
// GET /api/bookings/available-rooms
// ---------------------------

func (ctrl *BookingController) GetAvailableRooms(c *gin.Context) {
	roomTypeID, ok := parseUintParam(c.Query("room_type_id"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidRoomTypeId", "room_type_id is required")
		return
	}
	checkIn, err := utils.ParseDate(c.Query("check_in_date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_in_date: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out_date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_out_date: "+err.Error())
		return
	}

	var exclude *uint
	if raw := c.Query("exclude_booking_id"); raw != "" {
		id, ok := parseUintParam(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidBookingId", "exclude_booking_id must be a positive integer")
			return
		}
		exclude = &id
	}

	rooms, err := ctrl.BookingSvc.AvailableRooms(c.Request.Context(), roomTypeID, checkIn, checkOut, exclude)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_rooms": rooms})
}
