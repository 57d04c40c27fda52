package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hrfx-gateway/internal/domain"
)

const (
	nrbBaseURL    = "https://www.nrb.org.np/api/forex/v1"
	nrbSourceName = "Nepal Rastra Bank"
)

// NRBDocument mirrors the nested shape of the NRB forex API response.
type NRBDocument struct {
	Data struct {
		Payload []NRBPayload `json:"payload"`
	} `json:"data"`
}

type NRBPayload struct {
	Date  string    `json:"date"`
	Rates []NRBRate `json:"rates"`
}

// NRBRate carries buy/sell as strings; blank sell happens for real currencies.
type NRBRate struct {
	Currency NRBCurrency `json:"currency"`
	Buy      string      `json:"buy"`
	Sell     string      `json:"sell"`
}

type NRBCurrency struct {
	ISO3 string `json:"iso3"`
	Name string `json:"name"`
	Unit int    `json:"unit"`
}

type NRBClient struct {
	baseURL string
	http    *http.Client
}

func NewNRBClient(timeout time.Duration) *NRBClient {
	return &NRBClient{
		baseURL: nrbBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchRates pulls the official rate sheet for one day (YYYY-MM-DD).
func (c *NRBClient) FetchRates(ctx context.Context, day string) (*NRBDocument, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("per_page", "100")
	q.Set("from", day)
	q.Set("to", day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/rates?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable{Source: nrbSourceName, Cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable{Source: nrbSourceName, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrUpstreamUnavailable{Source: nrbSourceName, Status: resp.StatusCode}
	}

	var doc NRBDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, domain.ErrUpstreamFormat{Source: nrbSourceName, Detail: "undecodable rate document: " + err.Error()}
	}
	return &doc, nil
}
