package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeinventory/internal/core"
)

const maxBackupBytes = 32 << 20

// ExportBackup handles GET /api/backup
func (h *Handler) ExportBackup(c *gin.Context) {
	art, err := h.archiver.RenderBackup(h.repo.Snapshot())
	if err != nil {
		fail(c, http.StatusInternalServerError, err, "Could not build backup")
		return
	}
	h.download(c, art)
}

// ImportBackup handles POST /api/backup. Collections missing from the
// document are left as they are.
func (h *Handler) ImportBackup(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupBytes)
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, err, "Could not read backup")
		return
	}
	doc, err := core.DecodeBackup(raw)
	if err != nil {
		failFrom(c, err)
		return
	}
	if err := h.repo.Import(c.Request.Context(), doc); err != nil {
		failFrom(c, err)
		return
	}
	snap := h.repo.Snapshot()
	success(c, http.StatusOK, gin.H{
		"rooms":    len(snap.Rooms),
		"items":    len(snap.Items),
		"projects": len(snap.Projects),
	})
}

// ClearData handles DELETE /api/data
func (h *Handler) ClearData(c *gin.Context) {
	if err := h.repo.Clear(c.Request.Context()); err != nil {
		failFrom(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
