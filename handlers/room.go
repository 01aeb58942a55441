package handlers

import (
	"net/http"
	"strings"

	roomRepo "stayledger/database/repository/room"
	"stayledger/models"
	"stayledger/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler serves the public room catalogue.
type RoomHandler struct {
	Rooms roomRepo.RoomRepository
}

func NewRoomHandler(rooms roomRepo.RoomRepository) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

// ListRoomsHandler lists rooms by ?status=, AVAILABLE when omitted.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	status := models.RoomStatus(strings.ToUpper(c.DefaultQuery("status", string(models.RoomAvailable))))
	if status != models.RoomAvailable && status != models.RoomOccupied {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "status must be AVAILABLE or OCCUPIED")
		return
	}

	rooms, err := h.Rooms.FindByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, "Failed to list rooms", err)
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}
