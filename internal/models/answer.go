// internal/models/answer.go
package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Freshness distinguishes how a DataAnswer was obtained.
type Freshness string

const (
	FreshnessLive         Freshness = "live"
	FreshnessCached       Freshness = "cached"
	FreshnessFallback     Freshness = "fallback"
	FreshnessUnresolvable Freshness = "unresolvable"
	FreshnessNone         Freshness = "none"
)

// PayloadKind tags the concrete Payload variant.
type PayloadKind string

const (
	KindMarketPrice PayloadKind = "market_price"
	KindWeather     PayloadKind = "weather"
	KindCropAdvice  PayloadKind = "crop_advice"
	KindSchemeList  PayloadKind = "scheme_list"
	KindPriceList   PayloadKind = "price_list"
)

// Payload is implemented only by the variants in this file.
type Payload interface {
	Kind() PayloadKind
	isPayload()
}

type MarketPrice struct {
	Commodity string  `json:"commodity"`
	Location  string  `json:"location"`
	State     string  `json:"state,omitempty"`
	Market    string  `json:"market,omitempty"`
	Price     float64 `json:"price"`
	MinPrice  float64 `json:"minPrice,omitempty"`
	MaxPrice  float64 `json:"maxPrice,omitempty"`
	Unit      string  `json:"unit"`
	Date      string  `json:"date,omitempty"`
}

// PriceList carries one quote per commodity for sub-queries naming several.
type PriceList struct {
	Location string        `json:"location"`
	Prices   []MarketPrice `json:"prices"`
}

type DailyForecast struct {
	Date         string  `json:"date"`
	MaxTempC     float64 `json:"maxTempC"`
	MinTempC     float64 `json:"minTempC"`
	RainMM       float64 `json:"rainMm"`
	RainChancePc float64 `json:"rainChancePc"`
}

type WeatherReport struct {
	Location     string          `json:"location"`
	TemperatureC float64         `json:"temperatureC"`
	HumidityPc   float64         `json:"humidityPc"`
	RainMM       float64         `json:"rainMm"`
	Condition    string          `json:"condition"`
	Daily        []DailyForecast `json:"daily,omitempty"`
}

type CropSuggestion struct {
	Crop   string `json:"crop"`
	Reason string `json:"reason,omitempty"`
}

type CropAdvice struct {
	Location string           `json:"location"`
	State    string           `json:"state,omitempty"`
	Season   string           `json:"season"`
	Crops    []CropSuggestion `json:"crops"`
}

type Scheme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Benefit     string `json:"benefit,omitempty"`
	URL         string `json:"url,omitempty"`
}

type SchemeList struct {
	Query   string   `json:"query,omitempty"`
	State   string   `json:"state,omitempty"`
	Schemes []Scheme `json:"schemes"`
}

func (*MarketPrice) Kind() PayloadKind   { return KindMarketPrice }
func (*WeatherReport) Kind() PayloadKind { return KindWeather }
func (*CropAdvice) Kind() PayloadKind    { return KindCropAdvice }
func (*SchemeList) Kind() PayloadKind    { return KindSchemeList }
func (*PriceList) Kind() PayloadKind     { return KindPriceList }

func (*MarketPrice) isPayload()   {}
func (*WeatherReport) isPayload() {}
func (*CropAdvice) isPayload()    {}
func (*SchemeList) isPayload()    {}
func (*PriceList) isPayload()     {}

type payloadEnvelope struct {
	Kind PayloadKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// EncodePayload marshals p as {"kind": ..., "data": ...}.
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("nil payload")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payloadEnvelope{Kind: p.Kind(), Data: data})
}

// DecodePayload reverses EncodePayload.
func DecodePayload(raw []byte) (Payload, error) {
	var env payloadEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	var p Payload
	switch env.Kind {
	case KindMarketPrice:
		p = &MarketPrice{}
	case KindWeather:
		p = &WeatherReport{}
	case KindCropAdvice:
		p = &CropAdvice{}
	case KindSchemeList:
		p = &SchemeList{}
	case KindPriceList:
		p = &PriceList{}
	default:
		return nil, fmt.Errorf("unknown payload kind %q", env.Kind)
	}

	if err := json.Unmarshal(env.Data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DataAnswer is the orchestrator's result for one sub-query.
type DataAnswer struct {
	Intent     Intent       `json:"intent"`
	Freshness  Freshness    `json:"freshness"`
	IsFallback bool         `json:"isFallback"`
	Source     string       `json:"source,omitempty"`
	FetchedAt  time.Time    `json:"fetchedAt,omitempty"`
	Missing    []EntityType `json:"missing,omitempty"`
	Payload    Payload      `json:"-"`
}

func (a DataAnswer) MarshalJSON() ([]byte, error) {
	type alias DataAnswer
	out := struct {
		alias
		Payload json.RawMessage `json:"payload,omitempty"`
	}{alias: alias(a)}
	if a.Payload != nil {
		raw, err := EncodePayload(a.Payload)
		if err != nil {
			return nil, err
		}
		out.Payload = raw
	}
	return json.Marshal(out)
}

func (a *DataAnswer) UnmarshalJSON(b []byte) error {
	type alias DataAnswer
	in := struct {
		*alias
		Payload json.RawMessage `json:"payload,omitempty"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if len(in.Payload) > 0 && string(in.Payload) != "null" {
		p, err := DecodePayload(in.Payload)
		if err != nil {
			return err
		}
		a.Payload = p
	}
	return nil
}

// MissingLocation reports whether the answer is unresolvable for lack of a location.
func (a *DataAnswer) MissingLocation() bool {
	return a.misses(EntityLocation)
}

// MissingCommodity reports whether the answer is unresolvable for lack of a commodity.
func (a *DataAnswer) MissingCommodity() bool {
	return a.misses(EntityCommodity)
}

func (a *DataAnswer) misses(t EntityType) bool {
	if a.Freshness != FreshnessUnresolvable {
		return false
	}
	for _, m := range a.Missing {
		if m == t {
			return true
		}
	}
	return false
}

// FetchRequest is the normalized entity set handed to a provider.
type FetchRequest struct {
	Intent    Intent    `json:"intent"`
	Location  *Location `json:"location,omitempty"`
	Commodity string    `json:"commodity,omitempty"`
	Season    string    `json:"season,omitempty"`
	DateRange string    `json:"dateRange,omitempty"`
	Query     string    `json:"query,omitempty"`
}

// CacheKey is stable for equal entity sets regardless of map or field order.
func (r FetchRequest) CacheKey() string {
	parts := map[string]string{}
	if r.Location != nil {
		parts["location"] = strings.ToLower(r.Location.Name)
		if r.Location.State != "" {
			parts["state"] = strings.ToLower(r.Location.State)
		}
	}
	if r.Commodity != "" {
		parts["commodity"] = r.Commodity
	}
	if r.Season != "" {
		parts["season"] = r.Season
	}
	if r.DateRange != "" {
		parts["date"] = r.DateRange
	}
	if q := strings.Join(strings.Fields(strings.ToLower(r.Query)), " "); q != "" {
		parts["query"] = q
	}

	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	segs := make([]string, 0, len(keys)+1)
	segs = append(segs, string(r.Intent))
	for _, k := range keys {
		segs = append(segs, k+"="+parts[k])
	}
	return strings.Join(segs, "|")
}
