package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

type Options struct {
	CORSOrigins []string
	AdminToken  string
	Log         logrus.FieldLogger
}

// SetupRouter wires the booking store API under /api.
func SetupRouter(bc *controllers.BookingController, rc *controllers.RoomController, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(opts.Log))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.RequireBearer(opts.AdminToken))
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			// must be registered before /:id
			bookings.GET("/available-rooms", bc.GetAvailableRooms)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		api.GET("/rooms", rc.GetRooms)
		api.GET("/room-types", rc.GetRoomTypes)
	}

	return r
}
