package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeinventory/internal/core"
	"homeinventory/internal/views"
	"homeinventory/pkg/domain"
)

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var errColorNotInPalette = errors.New("color is not in the project palette")

type projectSummary struct {
	domain.Project
	ItemCount int `json:"itemCount"`
}

// ListProjects handles GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	snap := h.repo.Snapshot()
	counts := views.ProjectItemCounts(snap.Projects, snap.Items)
	out := make([]projectSummary, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		out = append(out, projectSummary{Project: p, ItemCount: counts[p.ID]})
	}
	success(c, http.StatusOK, out)
}

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, errNameRequired, "Invalid request body")
		return
	}
	if req.Color != "" && !domain.IsPaletteColor(req.Color) {
		fail(c, http.StatusBadRequest, errColorNotInPalette, "Invalid project color")
		return
	}
	project, err := h.repo.AddProject(c.Request.Context(), core.ProjectDraft{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusCreated, project)
}

// GetProject handles GET /api/projects/:id with the project's items.
func (h *Handler) GetProject(c *gin.Context) {
	project, ok := h.repo.Project(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, nil, "Project not found")
		return
	}
	success(c, http.StatusOK, gin.H{"project": project, "items": views.ProjectItems(project.ID, h.repo.Items())})
}

// DeleteProject handles DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.repo.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		failFrom(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Catalog handles GET /api/catalog: the fixed pick lists plus the
// autocomplete sources derived from stored items.
func (h *Handler) Catalog(c *gin.Context) {
	items := h.repo.Items()
	success(c, http.StatusOK, gin.H{
		"categories":          domain.Categories,
		"availableCategories": views.AvailableCategories(items),
		"brands":              views.KnownBrands(items),
		"types":               views.KnownTypes(items),
		"colors":              domain.Colors,
		"currencies":          domain.Currencies,
	})
}
