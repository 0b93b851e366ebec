// Package openmeteo fetches current conditions and daily forecasts from the
// Open-Meteo API.
package openmeteo

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
	"krishi-assistant/internal/common/validation"
	"krishi-assistant/internal/models"
)

const (
	defaultForecastDays = 3
	timezone            = "Asia/Kolkata"
)

// Condition keys reported in WeatherReport.Condition.
const (
	ConditionClear        = "clear"
	ConditionPartlyCloudy = "partly_cloudy"
	ConditionOvercast     = "overcast"
	ConditionFog          = "fog"
	ConditionDrizzle      = "drizzle"
	ConditionRain         = "rain"
	ConditionSnow         = "snow"
	ConditionShowers      = "showers"
	ConditionThunderstorm = "thunderstorm"
)

var responseSchema = validation.MustCompile("open-meteo", `{
  "type": "object",
  "required": ["current"],
  "properties": {
    "current": {
      "type": "object",
      "required": ["temperature_2m"],
      "properties": {
        "temperature_2m": {"type": "number"},
        "relative_humidity_2m": {"type": "number"},
        "precipitation": {"type": "number"},
        "weather_code": {"type": "integer"}
      }
    },
    "daily": {
      "type": "object",
      "properties": {
        "time": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`)

type response struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		Rain        float64 `json:"precipitation"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time       []string  `json:"time"`
		MaxTemp    []float64 `json:"temperature_2m_max"`
		MinTemp    []float64 `json:"temperature_2m_min"`
		RainSum    []float64 `json:"precipitation_sum"`
		RainChance []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

type Client struct {
	baseURL string
	http    *apphttp.Client
	logger  logger.Logger
}

func New(cfg config.ProviderConfig, throttle apphttp.Throttle, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: apphttp.NewClient(
			time.Duration(cfg.Timeout)*time.Millisecond,
			apphttp.WithRetries(cfg.MaxRetries),
			apphttp.WithThrottle(throttle),
		),
		logger: log.WithFields(map[string]interface{}{"provider": providers.NameWeather}),
	}
}

func (c *Client) Name() string {
	return providers.NameWeather
}

func (c *Client) Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error) {
	if !req.Location.HasCoordinates() {
		return nil, apperrors.NewInvalidRequestError("weather needs a location with coordinates")
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

	report := &models.WeatherReport{
		Location:     req.Location.Name,
		TemperatureC: resp.Current.Temperature,
		HumidityPc:   resp.Current.Humidity,
		RainMM:       resp.Current.Rain,
		Condition:    Condition(resp.Current.WeatherCode),
	}
	d := resp.Daily
	for i, day := range d.Time {
		report.Daily = append(report.Daily, models.DailyForecast{
			Date:         day,
			MaxTempC:     at(d.MaxTemp, i),
			MinTempC:     at(d.MinTemp, i),
			RainMM:       at(d.RainSum, i),
			RainChancePc: at(d.RainChance, i),
		})
	}

	c.logger.Debug("weather fetched", map[string]interface{}{
		"location": req.Location.Name,
		"days":     len(report.Daily),
	})
	return report, nil
}

func (c *Client) buildURL(req models.FetchRequest) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(req.Location.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(req.Location.Lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max")
	q.Set("timezone", timezone)

	if start, end, ok := splitRange(req.DateRange); ok {
		q.Set("start_date", start)
		q.Set("end_date", end)
	} else {
		q.Set("forecast_days", strconv.Itoa(defaultForecastDays))
	}
	return fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, q.Encode())
}

func splitRange(r string) (string, string, bool) {
	start, end, ok := strings.Cut(r, "/")
	if !ok || start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

// Condition maps a WMO weather interpretation code to a condition key.
func Condition(code int) string {
	switch {
	case code == 0:
		return ConditionClear
	case code <= 2:
		return ConditionPartlyCloudy
	case code == 3:
		return ConditionOvercast
	case code == 45 || code == 48:
		return ConditionFog
	case code >= 51 && code <= 57:
		return ConditionDrizzle
	case code >= 61 && code <= 67:
		return ConditionRain
	case code >= 71 && code <= 77, code == 85, code == 86:
		return ConditionSnow
	case code >= 80 && code <= 82:
		return ConditionShowers
	case code >= 95:
		return ConditionThunderstorm
	default:
		return ConditionPartlyCloudy
	}
}
