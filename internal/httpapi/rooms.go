package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeinventory/internal/core"
	"homeinventory/internal/views"
	"homeinventory/pkg/domain"
)

type roomRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Width         float64  `json:"width"`
	Length        float64  `json:"length"`
	Unit          string   `json:"unit"`
	LinkedRoomIDs []string `json:"linkedRoomIds"`
}

func (r roomRequest) draft() core.RoomDraft {
	return core.RoomDraft{
		Name:          r.Name,
		Description:   r.Description,
		Width:         r.Width,
		Length:        r.Length,
		Unit:          domain.Unit(r.Unit),
		LinkedRoomIDs: r.LinkedRoomIDs,
	}
}

type roomSummary struct {
	domain.Room
	ItemCount           int    `json:"itemCount"`
	FormattedDimensions string `json:"formattedDimensions"`
}

var errNameRequired = errors.New("name is required")

func bindRoom(c *gin.Context) (roomRequest, bool) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body")
		return req, false
	}
	if strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, errNameRequired, "Invalid request body")
		return req, false
	}
	return req, true
}

// ListRooms handles GET /api/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	snap := h.repo.Snapshot()
	units := h.repo.Preferences().Units
	counts := views.RoomItemCounts(snap.Rooms, snap.Items)
	out := make([]roomSummary, 0, len(snap.Rooms))
	for _, room := range snap.Rooms {
		out = append(out, roomSummary{
			Room:                room,
			ItemCount:           counts[room.ID],
			FormattedDimensions: domain.FormatRoomDimensions(room, units),
		})
	}
	success(c, http.StatusOK, out)
}

// CreateRoom handles POST /api/rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	req, ok := bindRoom(c)
	if !ok {
		return
	}
	room, err := h.repo.SaveRoom(c.Request.Context(), core.CreateRoom{Draft: req.draft()})
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	req, ok := bindRoom(c)
	if !ok {
		return
	}
	room, err := h.repo.SaveRoom(c.Request.Context(), core.UpdateRoom{ID: c.Param("id"), Draft: req.draft()})
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusOK, room)
}

// GetRoom handles GET /api/rooms/:id
func (h *Handler) GetRoom(c *gin.Context) {
	room, ok := h.repo.Room(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Room not found")
		return
	}
	snap := h.repo.Snapshot()
	success(c, http.StatusOK, views.BuildRoomDetail(room, snap.Rooms, snap.Items, h.repo.Preferences().Units))
}

// SuggestRoomItems handles POST /api/rooms/:id/suggestions
func (h *Handler) SuggestRoomItems(c *gin.Context) {
	room, ok := h.repo.Room(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Room not found")
		return
	}
	suggestions, err := h.assistant.SuggestRoomItems(c.Request.Context(), room.Name, room.Description)
	if err != nil {
		h.logger.Warn("room suggestions unavailable", zap.String("room_id", room.ID), zap.Error(err))
		suggestions = []string{}
	}
	success(c, http.StatusOK, gin.H{"suggestions": suggestions})
}
