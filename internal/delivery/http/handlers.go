package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"hrfx-gateway/internal/app/service"
	"hrfx-gateway/internal/domain"
)

const defaultCurrency = "AUD"

type Handler struct {
	Cache    *service.CacheService
	FX       *service.FXService
	HR       *service.HRService
	FXWindow time.Duration
	HRWindow time.Duration
	Now      func() time.Time
	Log      logrus.FieldLogger
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/api/fx", h.FXRates)
	app.Get("/api/hr", h.HRData)
}

func (h *Handler) Index(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "HR API with FX Rates",
		"endpoints": fiber.Map{
			"hr_data":  "/api/hr",
			"fx_rates": "/api/fx?currency=AUD",
		},
		"version": "2.0",
	})
}

func (h *Handler) FXRates(c fiber.Ctx) error {
	code := c.Query("currency", defaultCurrency)
	now := h.Now()

	payload, hit, err := h.Cache.Obtain(service.FXCacheKey(code), h.FXWindow, func() ([]byte, bool, error) {
		quote, err := h.FX.Resolve(c.Context(), code, now)
		if err != nil {
			return nil, false, err
		}
		body, err := json.Marshal(quote)
		if err != nil {
			return nil, false, err
		}
		// Fallback quotes are served but never cached: the next request
		// should try the upstream again.
		return body, !quote.Fallback, nil
	})
	if err != nil {
		var notFound domain.ErrCurrencyNotFound
		if errors.As(err, &notFound) {
			c.Set("X-Cache", "MISS")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":     fmt.Sprintf("Currency %s not found", notFound.Code),
				"available": notFound.Available,
			})
		}
		h.log().WithError(err).Error("FX request failed")
		return jsonError(c, "Request failed", err.Error())
	}

	if hit {
		// The cached body was serialized with cached=false; flip it the way
		// the consumer expects.
		var quote domain.RateQuote
		if err := json.Unmarshal(payload, &quote); err == nil {
			quote.Cached = true
			c.Set("X-Cache", "HIT")
			return c.JSON(quote)
		}
	}

	c.Set("X-Cache", "MISS")
	c.Set("Content-Type", "application/json")
	return c.Send(payload)
}

func (h *Handler) HRData(c fiber.Ctx) error {
	now := h.Now()

	payload, hit, err := h.Cache.Obtain(service.HRCacheKey(h.HR.DatabaseID), h.HRWindow, func() ([]byte, bool, error) {
		report, err := h.HR.BuildReport(c.Context(), now)
		if err != nil {
			return nil, false, err
		}
		body, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, false, err
		}
		return body, true, nil
	})
	if err != nil {
		var missing domain.ErrConfigMissing
		if errors.As(err, &missing) {
			return jsonError(c, "Missing NOTION_TOKEN or NOTION_DB_ID", "")
		}
		h.log().WithError(err).Error("HR request failed")
		return jsonError(c, "Failed to load HR data", err.Error())
	}

	if hit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	c.Set("Content-Type", "application/json")
	return c.Send(payload)
}

func jsonError(c fiber.Ctx, message, details string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   message,
		"details": details,
	})
}

func (h *Handler) log() logrus.FieldLogger {
	if h.Log != nil {
		return h.Log
	}
	return logrus.StandardLogger()
}
