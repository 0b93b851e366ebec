// Package cropdb reads crop suitability by state and season from Postgres.
package cropdb

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "krishi-assistant/internal/common/errors"
	apphttp "krishi-assistant/internal/common/http"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/models"
)

// AnyState marks rows that apply to every state.
const AnyState = "*"

const suitabilityQuery = `SELECT crop, reason
FROM crop_suitability
WHERE (state = $1 OR state = $2) AND season = $3
ORDER BY CASE WHEN state = $1 THEN 0 ELSE 1 END, rank
LIMIT $4`

type Client struct {
	db       *sql.DB
	throttle apphttp.Throttle
	limit    int
	logger   logger.Logger
}

func New(db *sql.DB, throttle apphttp.Throttle, log logger.Logger) *Client {
	return &Client{
		db:       db,
		throttle: throttle,
		limit:    5,
		logger:   log.WithFields(map[string]interface{}{"provider": providers.NameCrops}),
	}
}

func (c *Client) Name() string {
	return providers.NameCrops
}

func (c *Client) Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error) {
	if req.Location == nil || req.Season == "" {
		return nil, apperrors.NewInvalidRequestError("crop advice needs location and season")
	}
	if _, err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, suitabilityQuery, req.Location.State, AnyState, req.Season, c.limit)
	if err != nil {
		return nil, providers.WrapError(c.Name(), fmt.Errorf("postgres: %w", err))
	}
	defer rows.Close()

	advice := &models.CropAdvice{
		Location: req.Location.Name,
		State:    req.Location.State,
		Season:   req.Season,
	}
	for rows.Next() {
		var crop string
		var reason sql.NullString
		if err := rows.Scan(&crop, &reason); err != nil {
			return nil, apperrors.NewMalformedPayloadError(c.Name(), err.Error())
		}
		advice.Crops = append(advice.Crops, models.CropSuggestion{Crop: crop, Reason: reason.String})
	}
	if err := rows.Err(); err != nil {
		return nil, providers.WrapError(c.Name(), fmt.Errorf("postgres: %w", err))
	}
	if len(advice.Crops) == 0 {
		return nil, apperrors.NewProviderUnavailableError(c.Name(),
			fmt.Errorf("no crops for %s in %s", req.Season, req.Location.State))
	}

	c.logger.Debug("crop suitability loaded", map[string]interface{}{
		"state":  req.Location.State,
		"season": req.Season,
		"crops":  len(advice.Crops),
	})
	return advice, nil
}
