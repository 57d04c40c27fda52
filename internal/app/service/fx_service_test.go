package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrfx-gateway/internal/domain"
	"hrfx-gateway/internal/upstream"
)

type fakeRates struct {
	doc *upstream.NRBDocument
	err error
}

func (f *fakeRates) FetchRates(ctx context.Context, day string) (*upstream.NRBDocument, error) {
	return f.doc, f.err
}

func rateDoc(date string, rates ...upstream.NRBRate) *upstream.NRBDocument {
	doc := &upstream.NRBDocument{}
	doc.Data.Payload = []upstream.NRBPayload{{Date: date, Rates: rates}}
	return doc
}

func nrbRate(iso3 string, unit int, buy, sell string) upstream.NRBRate {
	return upstream.NRBRate{
		Currency: upstream.NRBCurrency{ISO3: iso3, Unit: unit},
		Buy:      buy,
		Sell:     sell,
	}
}

func TestFXResolveUnitScaling(t *testing.T) {
	svc := &FXService{Source: &fakeRates{doc: rateDoc("2025-06-01",
		nrbRate("INR", 100, "1600", "1610"),
	)}}

	quote, err := svc.Resolve(context.Background(), "INR", time.Now())
	require.NoError(t, err)

	assert.InDelta(t, 16.10, quote.Sell, 1e-9)
	assert.InDelta(t, 16.00, quote.Buy, 1e-9)
	assert.InDelta(t, 16.10, quote.Rate, 1e-9)
	assert.Equal(t, 100, quote.Unit)
	assert.Equal(t, "INRNPR", quote.Currency)
	assert.Equal(t, "Nepal Rastra Bank", quote.Source)
	assert.Equal(t, "2025-06-01", quote.Date)
	assert.False(t, quote.Fallback)
}

func TestFXResolveBlankSellUsesBuy(t *testing.T) {
	tests := []struct {
		name string
		sell string
	}{
		{name: "empty sell", sell: ""},
		{name: "zero sell", sell: "0"},
		{name: "unparseable sell", sell: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FXService{Source: &fakeRates{doc: rateDoc("2025-06-01",
				nrbRate("AUD", 1, "88.40", tt.sell),
			)}}

			quote, err := svc.Resolve(context.Background(), "AUD", time.Now())
			require.NoError(t, err)
			assert.InDelta(t, 88.40, quote.Rate, 1e-9)
			assert.InDelta(t, 88.40, quote.Sell, 1e-9)
		})
	}
}

func TestFXResolveUnitDefaultsToOne(t *testing.T) {
	svc := &FXService{Source: &fakeRates{doc: rateDoc("2025-06-01",
		nrbRate("USD", 0, "132.50", "133.10"),
	)}}

	quote, err := svc.Resolve(context.Background(), "USD", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, quote.Unit)
	assert.InDelta(t, 133.10, quote.Rate, 1e-9)
}

func TestFXResolveCurrencyNotFound(t *testing.T) {
	svc := &FXService{Source: &fakeRates{doc: rateDoc("2025-06-01",
		nrbRate("USD", 1, "132.50", "133.10"),
		nrbRate("EUR", 1, "144.20", "145.00"),
	)}}

	_, err := svc.Resolve(context.Background(), "XYZ", time.Now())
	var notFound domain.ErrCurrencyNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "XYZ", notFound.Code)
	assert.Equal(t, []string{"USD", "EUR"}, notFound.Available)
}

func TestFXResolveFallbackOnUpstreamFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := &FXService{Source: &fakeRates{err: domain.ErrUpstreamUnavailable{
		Source: "Nepal Rastra Bank",
		Cause:  errors.New("connection refused"),
	}}}

	quote, err := svc.Resolve(context.Background(), "AUD", now)
	require.NoError(t, err)

	assert.True(t, quote.Fallback)
	assert.InDelta(t, 85.50, quote.Rate, 1e-9)
	assert.Equal(t, "AUDNPR", quote.Currency)
	assert.Equal(t, "Fallback (NRB unavailable)", quote.Source)
	assert.Equal(t, "2025-06-01", quote.Date)
	assert.NotEmpty(t, quote.Err)
}

func TestFXResolveFallbackOnFormatError(t *testing.T) {
	svc := &FXService{Source: &fakeRates{doc: &upstream.NRBDocument{}}}

	quote, err := svc.Resolve(context.Background(), "AUD", time.Now())
	require.NoError(t, err)
	assert.True(t, quote.Fallback)
	assert.Contains(t, quote.Err, "no forex data available")
}
