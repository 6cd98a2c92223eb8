package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/cache"
	"hotel-booking/models"
	"hotel-booking/policy"
)

var (
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrRoomTypeNotFound = errors.New("room_type_not_found")
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type BookingFilter struct {
	Status   string
	Search   string
	FromDate *time.Time
	Page     int
	Limit    int
}

// NormalizePage clamps paging input to page >= 1 and 1 <= limit <= MaxPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// BookingService is the booking store: the persistence side of the admin
// booking workflow.
type BookingService struct {
	DB    *gorm.DB
	Cache *cache.AvailabilityCache
	Log   logrus.FieldLogger
}

func NewBookingService(db *gorm.DB, c *cache.AvailabilityCache, log logrus.FieldLogger) *BookingService {
	return &BookingService{DB: db, Cache: c, Log: log}
}

func (s *BookingService) List(ctx context.Context, f BookingFilter) (models.BookingPage, error) {
	page, limit := NormalizePage(f.Page, f.Limit)
	out := models.BookingPage{Data: []models.Booking{}, Page: page, Limit: limit}

	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	if status := strings.TrimSpace(f.Status); status != "" && !strings.EqualFold(status, "all") {
		st, ok := models.ParseBookingStatus(status)
		if !ok {
			return out, fmt.Errorf("validation: unknown status %q", status)
		}
		q = q.Where("bookings.status = ?", st)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Joins("LEFT JOIN users ON users.id = bookings.user_id").
			Joins("LEFT JOIN rooms ON rooms.id = bookings.room_id").
			Where("LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(rooms.room_number) LIKE ? OR CAST(bookings.id AS CHAR) = ?",
				like, like, like, term)
	}
	if f.FromDate != nil {
		q = q.Where("bookings.check_in_date >= ?", policy.CalendarDate(*f.FromDate))
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&out.Total).Error; err != nil {
		return out, fmt.Errorf("failed to count bookings: %w", err)
	}

	if err := q.
		Preload("User").
		Preload("RoomType").
		Preload("Room").
		Order("bookings.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out.Data).Error; err != nil {
		return out, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("RoomType").
		Preload("Room").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &b, nil
}

// Update applies patch in one transaction. The booking row and any newly
// assigned room row are locked, so two admins assigning the same room to
// overlapping stays serialize and the second gets ConflictingAssignment.
func (s *BookingService) Update(ctx context.Context, id uint, patch BookingPatch) (*models.Booking, error) {
	var roomTypeID uint
	changed := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		roomTypeID = booking.RoomTypeID

		updates, next, err := PlanUpdate(booking, patch)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}

		if _, assigning := updates["room_id"]; assigning && next.RoomID != nil {
			if err := checkAssignable(tx, booking, *next.RoomID); err != nil {
				return err
			}
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.invalidate(ctx, roomTypeID)
		s.Log.WithFields(logrus.Fields{"booking_id": id}).Info("booking updated")
	}
	return s.Get(ctx, id)
}

func checkAssignable(tx *gorm.DB, booking models.Booking, roomID uint) error {
	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.NewError(policy.KindInvalidRoomSelection, fmt.Sprintf("room %d not found", roomID), nil)
		}
		return err
	}
	if !room.IsActive {
		return policy.NewError(policy.KindInvalidRoomSelection, fmt.Sprintf("room %s is not active", room.RoomNumber), nil)
	}
	if room.RoomTypeID != booking.RoomTypeID {
		return policy.NewError(policy.KindInvalidRoomSelection, fmt.Sprintf("room %s is not of the booked room type", room.RoomNumber), nil)
	}

	stay := policy.RangeOf(booking)
	var others []models.Booking
	if err := tx.
		Where("room_id = ? AND id <> ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID, booking.ID, models.StatusCancelled, stay.End, stay.Start).
		Find(&others).Error; err != nil {
		return fmt.Errorf("failed to check room conflicts: %w", err)
	}
	for _, other := range others {
		if policy.Blocks(other, stay, &booking.ID) {
			return policy.NewError(policy.KindConflictingAssignment,
				fmt.Sprintf("room %s is already assigned to booking %d for overlapping dates", room.RoomNumber, other.ID), nil)
		}
	}
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id uint) error {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to find booking: %w", err)
	}
	if err := s.DB.WithContext(ctx).Delete(&booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	s.invalidate(ctx, booking.RoomTypeID)
	return nil
}

// AvailableRooms lists active rooms of the type with no blocking booking in
// [checkIn, checkOut), ignoring excludeBookingID.
func (s *BookingService) AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error) {
	stay, err := policy.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}

	gen, cacheErr := s.Cache.Generation(ctx, roomTypeID)
	if cacheErr != nil {
		s.Log.WithError(cacheErr).Warn("availability cache read failed")
	} else if rooms, hit, err := s.Cache.Get(ctx, gen, roomTypeID, stay.Start, stay.End, excludeBookingID); err != nil {
		s.Log.WithError(err).Warn("availability cache read failed")
	} else if hit {
		return rooms, nil
	}

	var rooms []models.Room
	if err := s.DB.WithContext(ctx).
		Preload("RoomType").
		Where("room_type_id = ? AND is_active = ?", roomTypeID, true).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	available := []models.Room{}
	if len(rooms) > 0 {
		ids := make([]uint, 0, len(rooms))
		for _, r := range rooms {
			ids = append(ids, r.ID)
		}
		var blocking []models.Booking
		if err := s.DB.WithContext(ctx).
			Where("room_id IN ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
				ids, models.StatusCancelled, stay.End, stay.Start).
			Find(&blocking).Error; err != nil {
			return nil, fmt.Errorf("failed to load bookings: %w", err)
		}
		available = policy.FilterAvailable(rooms, blocking, stay, excludeBookingID)
	}

	if cacheErr == nil {
		if err := s.Cache.Set(ctx, gen, roomTypeID, stay.Start, stay.End, excludeBookingID, available); err != nil {
			s.Log.WithError(err).Warn("availability cache write failed")
		}
	}
	return available, nil
}

func (s *BookingService) invalidate(ctx context.Context, roomTypeID uint) {
	if err := s.Cache.Invalidate(ctx, roomTypeID); err != nil {
		s.Log.WithError(err).WithField("room_type_id", roomTypeID).Warn("availability cache invalidation failed")
	}
}
