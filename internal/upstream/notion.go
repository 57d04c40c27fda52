package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hrfx-gateway/internal/domain"
)

const (
	notionBaseURL    = "https://api.notion.com/v1"
	notionVersion    = "2022-06-28"
	notionSourceName = "Notion"
)

// NotionPage is one record of the HR database. Properties may be missing
// entirely; the accessor methods substitute type-appropriate defaults.
type NotionPage struct {
	ID         string                    `json:"id"`
	Properties map[string]NotionProperty `json:"properties"`
}

// NotionProperty is the union of the property types the HR database uses.
// Exactly one of the inner fields is populated per property.
type NotionProperty struct {
	RichText []RichTextFragment `json:"rich_text"`
	Select   *SelectValue       `json:"select"`
	Number   *float64           `json:"number"`
	Date     *DateValue         `json:"date"`
	Formula  *FormulaValue      `json:"formula"`
}

type RichTextFragment struct {
	PlainText string `json:"plain_text"`
}

type SelectValue struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

type FormulaValue struct {
	String *string `json:"string"`
}

// Text returns the plain text of a rich_text property, or "".
func (p NotionPage) Text(name string) string {
	prop, ok := p.Properties[name]
	if !ok || len(prop.RichText) == 0 {
		return ""
	}
	return prop.RichText[0].PlainText
}

// Select returns the chosen option name of a select property, or "".
func (p NotionPage) Select(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

// Number returns a number property, or 0.
func (p NotionPage) Number(name string) float64 {
	prop, ok := p.Properties[name]
	if !ok || prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// Date returns the start of a date property, or nil when absent.
func (p NotionPage) Date(name string) *string {
	prop, ok := p.Properties[name]
	if !ok || prop.Date == nil || prop.Date.Start == "" {
		return nil
	}
	start := prop.Date.Start
	return &start
}

// Formula returns the string result of a formula property, or "".
func (p NotionPage) Formula(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Formula == nil || prop.Formula.String == nil {
		return ""
	}
	return *prop.Formula.String
}

type notionQueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
}

type notionQueryResponse struct {
	Results    []NotionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type NotionClient struct {
	baseURL    string
	token      string
	databaseID string
	http       *http.Client
}

func NewNotionClient(token, databaseID string, timeout time.Duration) *NotionClient {
	return &NotionClient{
		baseURL:    notionBaseURL,
		token:      token,
		databaseID: databaseID,
		http:       &http.Client{Timeout: timeout},
	}
}

// QueryDatabase reads the whole HR database, following the query cursor until
// the upstream reports no more pages.
func (c *NotionClient) QueryDatabase(ctx context.Context) ([]NotionPage, error) {
	var pages []NotionPage
	cursor := ""
	for {
		page, err := c.queryPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			return pages, nil
		}
		cursor = page.NextCursor
	}
}

func (c *NotionClient) queryPage(ctx context.Context, cursor string) (*notionQueryResponse, error) {
	body, err := json.Marshal(notionQueryRequest{StartCursor: cursor})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/databases/" + c.databaseID + "/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable{Source: notionSourceName, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable{Source: notionSourceName, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrUpstreamUnavailable{Source: notionSourceName, Status: resp.StatusCode}
	}

	var out notionQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.ErrUpstreamFormat{Source: notionSourceName, Detail: "undecodable query response: " + err.Error()}
	}
	return &out, nil
}
