package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/apperrors"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
	"github.com/smokyabdulrahman/salah-times/internal/resolver"
)

// PrayerService is the resolution surface the handlers expose.
type PrayerService interface {
	Local(ctx context.Context, req resolver.LocalRequest) (prayer.Times, error)
	Resolve(ctx context.Context, req resolver.ResolveRequest) resolver.Result
}

// DatasetLocator picks the dataset file for a location.
type DatasetLocator interface {
	Locate(countryCode, timezone, city string) (string, bool)
}

// Handler wires the HTTP transport to the resolver.
type Handler struct {
	svc     PrayerService
	locator DatasetLocator
	log     zerolog.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(svc PrayerService, locator DatasetLocator, log zerolog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		locator: locator,
		log:     log.With().Str("component", "http.handler").Logger(),
	}
}

// Local resolves from the dataset files only and reports lookup failures.
func (h *Handler) Local(c *gin.Context) {
	var req resolver.LocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	times, err := h.svc.Local(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, times)
}

// Resolve runs the full pipeline. It only fails on a malformed body.
func (h *Handler) Resolve(c *gin.Context) {
	req := resolver.ResolveRequest{Settings: prayer.DefaultSettings()}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, h.svc.Resolve(c.Request.Context(), req))
}

// Locate reports which dataset file a location maps to.
func (h *Handler) Locate(c *gin.Context) {
	country := c.Query("country")
	if country == "" && c.Query("timezone") == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeCountryRequired, "country or timezone required", nil))
		return
	}

	path, ok := h.locator.Locate(country, c.Query("timezone"), c.Query("city"))
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeDatasetNotFound, "city dataset not found", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// Methods lists the remote calculation methods a ResolveRequest may name.
func (h *Handler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": api.Methods})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
