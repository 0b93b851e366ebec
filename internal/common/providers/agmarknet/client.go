// Package agmarknet fetches daily mandi prices from the data.gov.in
// Agmarknet resource.
package agmarknet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
	apphttp "krishi-assistant/internal/common/http"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/common/validation"
	"krishi-assistant/internal/models"
)

const unitQuintal = "quintal"

var responseSchema = validation.MustCompile("agmarknet", `{
  "type": "object",
  "required": ["records"],
  "properties": {
    "records": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["commodity", "modal_price"],
        "properties": {
          "commodity": {"type": "string"},
          "modal_price": {"type": ["string", "number"]},
          "min_price": {"type": ["string", "number"]},
          "max_price": {"type": ["string", "number"]}
        }
      }
    }
  }
}`)

// price accepts both the quoted and the bare numeric form the API returns.
type price float64

func (p *price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" || s == "NR" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*p = price(v)
	return nil
}

type record struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    price  `json:"min_price"`
	MaxPrice    price  `json:"max_price"`
	ModalPrice  price  `json:"modal_price"`
}

type response struct {
	Records []record `json:"records"`
}

type Client struct {
	baseURL    string
	apiKey     string
	resourceID string
	http       *apphttp.Client
	logger     logger.Logger
	title      cases.Caser
}

func New(cfg config.ProviderConfig, throttle apphttp.Throttle, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		resourceID: cfg.ResourceID,
		http: apphttp.NewClient(
			time.Duration(cfg.Timeout)*time.Millisecond,
			apphttp.WithRetries(cfg.MaxRetries),
			apphttp.WithThrottle(throttle),
		),
		logger: log.WithFields(map[string]interface{}{"provider": providers.NameMarketPrice}),
		title:  cases.Title(language.English),
	}
}

func (c *Client) Name() string {
	return providers.NameMarketPrice
}

func (c *Client) Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error) {
	if req.Commodity == "" || req.Location == nil {
		return nil, apperrors.NewInvalidRequestError("market price needs commodity and location")
	}

	body, err := c.http.GetJSON(ctx, c.buildURL(req), nil)
	if err != nil {
		return nil, providers.WrapError(c.Name(), err)
	}

	result, err := responseSchema.ValidateBytes(body)
	if err != nil {
		return nil, apperrors.NewMalformedPayloadError(c.Name(), err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewMalformedPayloadError(c.Name(), result.Summary())
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewMalformedPayloadError(c.Name(), err.Error())
	}

	rec, ok := pickRecord(resp.Records, req.Location)
	if !ok {
		return nil, apperrors.NewProviderUnavailableError(c.Name(),
			fmt.Errorf("no priced records for %s in %s", req.Commodity, req.Location.Name))
	}

	c.logger.Debug("agmarknet record selected", map[string]interface{}{
		"market":  rec.Market,
		"records": len(resp.Records),
	})

	return &models.MarketPrice{
		Commodity: req.Commodity,
		Location:  req.Location.Name,
		State:     firstNonEmpty(req.Location.State, rec.State),
		Market:    rec.Market,
		Price:     float64(rec.ModalPrice),
		MinPrice:  float64(rec.MinPrice),
		MaxPrice:  float64(rec.MaxPrice),
		Unit:      unitQuintal,
		Date:      normalizeDate(rec.ArrivalDate),
	}, nil
}

func (c *Client) buildURL(req models.FetchRequest) string {
	q := url.Values{}
	q.Set("api-key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", "50")
	q.Set("filters[commodity]", c.title.String(req.Commodity))
	if req.Location.State != "" {
		q.Set("filters[state]", req.Location.State)
	}
	return fmt.Sprintf("%s/resource/%s?%s", c.baseURL, c.resourceID, q.Encode())
}

// pickRecord prefers the requested district, then any market in the state.
// Records without a modal price are skipped.
func pickRecord(records []record, loc *models.Location) (record, bool) {
	var fallback *record
	for i := range records {
		r := &records[i]
		if r.ModalPrice <= 0 {
			continue
		}
		if strings.EqualFold(r.District, loc.Name) || strings.EqualFold(r.Market, loc.Name) {
			return *r, true
		}
		if fallback == nil {
			fallback = r
		}
	}
	if fallback == nil {
		return record{}, false
	}
	return *fallback, true
}

// normalizeDate turns the API's dd/mm/yyyy into yyyy-mm-dd.
func normalizeDate(s string) string {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
