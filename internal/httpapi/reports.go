package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeinventory/internal/archive"
	"homeinventory/internal/views"
	"homeinventory/pkg/domain"
)

type reportResponse struct {
	views.Report
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

func bindFilter(c *gin.Context) (views.ReportFilter, bool) {
	var f views.ReportFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid report filter")
		return f, false
	}
	return f, true
}

// Report handles GET /api/reports?room=&category=&project=&insurance=
func (h *Handler) Report(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	prefs := h.repo.Preferences()
	success(c, http.StatusOK, reportResponse{
		Report:         views.FilterReport(h.repo.Items(), f),
		Currency:       prefs.Currency,
		CurrencySymbol: domain.CurrencySymbol(prefs.Currency),
	})
}

// ExportReport returns a handler that downloads the filtered report in
// format and keeps a copy in the archive.
func (h *Handler) ExportReport(format archive.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFilter(c)
		if !ok {
			return
		}
		snap := h.repo.Snapshot()
		report := views.FilterReport(snap.Items, f)
		rows := views.ExportRows(report.Items, snap.Rooms, snap.Projects)
		art, err := h.archiver.RenderReport(format, rows, h.repo.Preferences().Currency)
		if err != nil {
			fail(c, http.StatusInternalServerError, err, "Could not render report")
			return
		}
		h.download(c, art)
	}
}

// download archives art best-effort and streams it as an attachment.
func (h *Handler) download(c *gin.Context, art archive.Artifact) {
	stored, err := h.archiver.Store(c.Request.Context(), art)
	if err != nil {
		h.logger.Warn("artifact not archived", zap.String("file", art.FileName), zap.Error(err))
	} else {
		c.Header("X-Archive-Key", stored.Info.Key)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.FileName))
	c.Data(http.StatusOK, art.ContentType, art.Payload)
}

// ListArchive handles GET /api/archive?prefix=
func (h *Handler) ListArchive(c *gin.Context) {
	infos, err := h.archiver.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err, "Could not list archive")
		return
	}
	success(c, http.StatusOK, infos)
}
