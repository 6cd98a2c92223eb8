package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-booking/models"
	"hotel-booking/utils"
)

type RoomCatalog interface {
	List(ctx context.Context, roomTypeID *uint) ([]models.Room, error)
	ListTypes(ctx context.Context) ([]models.RoomType, error)
}

type RoomController struct {
	RoomSvc RoomCatalog
	Log     logrus.FieldLogger
}

func NewRoomController(svc RoomCatalog, log logrus.FieldLogger) *RoomController {
	return &RoomController{RoomSvc: svc, Log: log}
}

// GetRooms (GET /api/rooms?room_type_id=)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	var roomTypeID *uint
	if raw := c.Query("room_type_id"); raw != "" {
		id, ok := parseUintParam(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidRoomTypeId", "room_type_id must be a positive integer")
			return
		}
		roomTypeID = &id
	}

	rooms, err := ctrl.RoomSvc.List(c.Request.Context(), roomTypeID)
	if err != nil {
		ctrl.Log.WithError(err).Error("GetRooms failed")
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchRooms", "could not load rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomTypes (GET /api/room-types)
func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomSvc.ListTypes(c.Request.Context())
	if err != nil {
		ctrl.Log.WithError(err).Error("GetRoomTypes failed")
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchRoomTypes", "could not load room types")
		return
	}
	c.JSON(http.StatusOK, types)
}
