package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking/models"
)

// SeedDatabase inserts demo room types, rooms, guests and bookings into an
// empty database. Existing rows are left alone.
func SeedDatabase(db *gorm.DB, log logrus.FieldLogger) {
	// ---------------- RoomTypes ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", PricePerNight: 1200, Capacity: 2, Amenities: datatypes.JSON(`["wifi","tv"]`)},
			{Name: "Deluxe", Description: "Deluxe Room", PricePerNight: 2200, Capacity: 3, Amenities: datatypes.JSON(`["wifi","tv","minibar"]`)},
			{Name: "Suite", Description: "Suite", PricePerNight: 4500, Capacity: 4, Amenities: datatypes.JSON(`["wifi","tv","minibar","bathtub"]`)},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			log.WithError(err).Warn("failed to seed room types")
			return
		}
		log.Info("RoomTypes seeded")
	}

	var types []models.RoomType
	if err := db.Order("id").Find(&types).Error; err != nil || len(types) == 0 {
		return
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		numbers := map[string][]string{
			"Standard": {"101", "102", "103"},
			"Deluxe":   {"201", "202"},
			"Suite":    {"301"},
		}
		var rooms []models.Room
		for _, rt := range types {
			for _, n := range numbers[rt.Name] {
				rooms = append(rooms, models.Room{RoomTypeID: rt.ID, RoomNumber: n, Floor: n[:1], IsActive: true})
			}
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.WithError(err).Warn("failed to seed rooms")
			return
		}
		log.Info("Rooms seeded")
	}

	// ---------------- Users ----------------
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Warn("failed to hash demo guest password")
			return
		}
		user := models.User{FullName: "Demo Guest", Email: "guest@hotel.local", PasswordHash: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			log.WithError(err).Warn("failed to seed demo guest")
			return
		}
		log.Info("Demo guest seeded")

		checkIn := time.Now().UTC().AddDate(0, 0, 7)
		booking := models.Booking{
			UserID:       user.ID,
			RoomTypeID:   types[0].ID,
			CheckInDate:  datatypes.Date(checkIn),
			CheckOutDate: datatypes.Date(checkIn.AddDate(0, 0, 3)),
			Status:       models.StatusPending,
			TotalPrice:   3 * types[0].PricePerNight,
		}
		if err := db.Create(&booking).Error; err != nil {
			log.WithError(err).Warn("failed to seed demo booking")
		}
	}
}
