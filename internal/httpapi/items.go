package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeinventory/internal/assist"
	"homeinventory/internal/core"
	"homeinventory/internal/views"
	"homeinventory/pkg/domain"
)

type itemRequest struct {
	RoomID       string   `json:"roomId" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Type         string   `json:"type"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Notes        string   `json:"notes"`
	ProjectIDs   []string `json:"projectIds"`
	Value        *float64 `json:"value"`
	PurchaseDate string   `json:"purchaseDate"`
	IsFixed      bool     `json:"isFixed"`
}

func (r itemRequest) draft() core.ItemDraft {
	return core.ItemDraft{
		RoomID:       r.RoomID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Type:         r.Type,
		Brand:        r.Brand,
		Model:        r.Model,
		Notes:        r.Notes,
		ProjectIDs:   r.ProjectIDs,
		Value:        r.Value,
		PurchaseDate: r.PurchaseDate,
		IsFixed:      r.IsFixed,
	}
}

func bindItem(c *gin.Context) (itemRequest, bool) {
	var req itemRequest
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

// ListItems handles GET /api/items; ?room= and ?project= narrow the list.
func (h *Handler) ListItems(c *gin.Context) {
	items := h.repo.Items()
	if roomID := c.Query("room"); roomID != "" {
		items = views.RoomItems(roomID, items)
	}
	if projectID := c.Query("project"); projectID != "" {
		items = views.ProjectItems(projectID, items)
	}
	success(c, http.StatusOK, items)
}

// GetItem handles GET /api/items/:id
func (h *Handler) GetItem(c *gin.Context) {
	item, ok := h.repo.Item(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Item not found")
		return
	}
	success(c, http.StatusOK, item)
}

// CreateItem handles POST /api/items
func (h *Handler) CreateItem(c *gin.Context) {
	req, ok := bindItem(c)
	if !ok {
		return
	}
	item, err := h.repo.SaveItem(c.Request.Context(), core.CreateItem{Draft: req.draft()})
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	req, ok := bindItem(c)
	if !ok {
		return
	}
	item, err := h.repo.SaveItem(c.Request.Context(), core.UpdateItem{ID: c.Param("id"), Draft: req.draft()})
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusOK, item)
}

// FindManual handles POST /api/items/:id/manual. The best match is merged
// into the stored item; no match leaves the item unchanged.
func (h *Handler) FindManual(c *gin.Context) {
	item, ok := h.repo.Item(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Item not found")
		return
	}
	ctx := c.Request.Context()
	results, err := h.assistant.FindManual(ctx, assist.FullDescription(item), assist.ItemDetails(item))
	if err != nil {
		h.logger.Warn("manual lookup unavailable", zap.String("item_id", item.ID), zap.Error(err))
		results = nil
	}
	if len(results) == 0 {
		success(c, http.StatusOK, gin.H{"found": false, "item": item, "results": []domain.ManualLink{}})
		return
	}
	updated, err := h.repo.ApplyManual(ctx, item.ID, results[0])
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"found": true, "item": updated, "results": results})
}

// EstimateValue handles POST /api/items/:id/valuation. The estimate is
// display-only and never stored.
func (h *Handler) EstimateValue(c *gin.Context) {
	item, ok := h.repo.Item(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Item not found")
		return
	}
	currency := h.repo.Preferences().Currency
	estimate, err := h.assistant.AnalyzeItemValue(c.Request.Context(), assist.FullDescription(item), assist.ItemDetails(item), currency)
	if err != nil {
		h.logger.Warn("valuation unavailable", zap.String("item_id", item.ID), zap.Error(err))
		estimate = assist.EstimateFailed
	}
	success(c, http.StatusOK, gin.H{"estimate": estimate, "currency": currency})
}
