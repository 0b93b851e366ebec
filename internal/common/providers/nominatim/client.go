// Package nominatim resolves place names within India through an
// OpenStreetMap Nominatim endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
	apphttp "krishi-assistant/internal/common/http"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/models"
)

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
	} `json:"address"`
}

type Client struct {
	baseURL string
	http    *apphttp.Client
	logger  logger.Logger
}

// New builds a geocoder. Nominatim's usage policy requires an identifying
// User-Agent and at most one request per second, which throttle enforces.
func New(cfg config.ProviderConfig, throttle apphttp.Throttle, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: apphttp.NewClient(
			time.Duration(cfg.Timeout)*time.Millisecond,
			apphttp.WithRetries(cfg.MaxRetries),
			apphttp.WithUserAgent(cfg.UserAgent),
			apphttp.WithThrottle(throttle),
		),
		logger: log.WithFields(map[string]interface{}{"provider": providers.NameGeocoding}),
	}
}

func (c *Client) Resolve(ctx context.Context, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewLocationNotFoundError(name)
	}

	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "jsonv2")
	q.Set("countrycodes", "in")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")

	body, err := c.http.GetJSON(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, providers.WrapError(providers.NameGeocoding, err)
	}

	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, apperrors.NewMalformedPayloadError(providers.NameGeocoding, err.Error())
	}
	if len(places) == 0 {
		return nil, apperrors.NewLocationNotFoundError(name)
	}

	p := places[0]
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, apperrors.NewMalformedPayloadError(providers.NameGeocoding, "non-numeric coordinates")
	}

	loc := &models.Location{
		Name:  firstNonEmpty(p.Address.City, p.Address.Town, p.Address.Village, p.Name, p.Address.County, name),
		State: p.Address.State,
		Lat:   lat,
		Lon:   lon,
	}
	c.logger.Info("place geocoded", map[string]interface{}{
		"query": name,
		"name":  loc.Name,
		"state": loc.State,
	})
	return loc, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
