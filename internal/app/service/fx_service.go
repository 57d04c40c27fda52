package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"hrfx-gateway/internal/domain"
	"hrfx-gateway/internal/upstream"
	"hrfx-gateway/pkg/dates"
)

const (
	fxSourceName     = "Nepal Rastra Bank"
	fxFallbackSource = "Fallback (NRB unavailable)"

	// Served when the rate sheet cannot be reached at all. A dashboard
	// rendering a slightly stale constant beats an error page.
	fxFallbackRate = 85.50
)

// FXCacheKey incorporates the currency code so distinct currencies never
// share a cache slot. The v2 segment survives from a historical cache bust.
func FXCacheKey(code string) string {
	return "fx-rate-v2-" + code
}

// RatesSource is the one-shot FX upstream fetch.
type RatesSource interface {
	FetchRates(ctx context.Context, day string) (*upstream.NRBDocument, error)
}

// Alerter delivers ops notifications, fire-and-forget.
type Alerter interface {
	Notify(message string)
}

type FXService struct {
	Source RatesSource
	Alerts Alerter
	Log    logrus.FieldLogger
}

// Resolve returns the quote for one currency code. Upstream unavailability
// and malformed documents degrade to a fallback quote instead of an error; an
// unknown-but-valid code is the only error this returns.
func (s *FXService) Resolve(ctx context.Context, code string, now time.Time) (*domain.RateQuote, error) {
	doc, err := s.Source.FetchRates(ctx, dates.FormatDay(now))
	if err != nil {
		return s.fallback(code, now, err), nil
	}

	if len(doc.Data.Payload) == 0 {
		return s.fallback(code, now, domain.ErrUpstreamFormat{Source: fxSourceName, Detail: "no forex data available"}), nil
	}
	sheet := doc.Data.Payload[0]
	if len(sheet.Rates) == 0 {
		return s.fallback(code, now, domain.ErrUpstreamFormat{Source: fxSourceName, Detail: "no forex data available"}), nil
	}

	var found *upstream.NRBRate
	available := make([]string, 0, len(sheet.Rates))
	for i := range sheet.Rates {
		iso3 := sheet.Rates[i].Currency.ISO3
		if iso3 != "" {
			available = append(available, iso3)
		}
		if iso3 == code {
			found = &sheet.Rates[i]
		}
	}
	if found == nil {
		return nil, domain.ErrCurrencyNotFound{Code: code, Available: available}
	}

	buy := parseRate(found.Buy)
	sell := parseRate(found.Sell)
	// Blank or zero sell happens for some currencies; buy becomes the
	// effective quoting basis then.
	if !usableRate(sell) {
		sell = buy
	}

	unit := found.Currency.Unit
	if unit < 1 {
		unit = 1
	}
	perUnit := float64(unit)

	return &domain.RateQuote{
		Rate:     sell / perUnit,
		Currency: code + "NPR",
		Source:   fxSourceName,
		Date:     sheet.Date,
		Buy:      buy / perUnit,
		Sell:     sell / perUnit,
		Unit:     unit,
	}, nil
}

func (s *FXService) fallback(code string, now time.Time, cause error) *domain.RateQuote {
	if s.Log != nil {
		s.Log.WithError(cause).WithField("currency", code).Warn("serving fallback FX rate")
	}
	if s.Alerts != nil {
		s.Alerts.Notify(fmt.Sprintf("FX fallback active for %s: %v", code, cause))
	}
	return &domain.RateQuote{
		Rate:     fxFallbackRate,
		Currency: code + "NPR",
		Source:   fxFallbackSource,
		Date:     dates.FormatDay(now),
		Fallback: true,
		Err:      cause.Error(),
	}
}

func parseRate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func usableRate(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
