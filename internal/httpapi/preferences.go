package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homeinventory/pkg/domain"
)

// cookieMaxAge mirrors domain.PreferencesTTL in seconds.
const cookieMaxAge = int(domain.PreferencesTTL / time.Second)

type preferencesRequest struct {
	Currency string `json:"currency"`
	Units    string `json:"units"`
}

func setPreferenceCookies(c *gin.Context, p domain.Preferences) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(domain.KeyCurrency, p.Currency, cookieMaxAge, "/", "", false, false)
	c.SetCookie(domain.KeyUnits, string(p.Units), cookieMaxAge, "/", "", false, false)
}

// GetPreferences handles GET /api/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs := h.repo.Preferences()
	setPreferenceCookies(c, prefs)
	success(c, http.StatusOK, gin.H{
		"currency":       prefs.Currency,
		"currencySymbol": domain.CurrencySymbol(prefs.Currency),
		"units":          prefs.Units,
	})
}

// UpdatePreferences handles PUT /api/preferences. Omitted fields keep their
// current value; unknown values fall back to the defaults.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	next := h.repo.Preferences()
	if req.Currency != "" {
		next.Currency = req.Currency
	}
	if req.Units != "" {
		next.Units = domain.Unit(req.Units)
	}
	saved, err := h.repo.SavePreferences(c.Request.Context(), next)
	setPreferenceCookies(c, saved)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"currency":       saved.Currency,
		"currencySymbol": domain.CurrencySymbol(saved.Currency),
		"units":          saved.Units,
	})
}
