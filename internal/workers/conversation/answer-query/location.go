// internal/workers/conversation/answer-query/location.go
package answerquery

import (
	"context"
	"strings"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/models"
)

// resolveCaller turns the caller's place name or coordinates into a
// location. A name wins over coordinates. Failures leave the caller without
// a location rather than failing the turn.
func (h *Handler) resolveCaller(ctx context.Context, input *Input) *models.Location {
	if name := strings.TrimSpace(input.LocationName); name != "" {
		if loc := h.resolveName(ctx, name); loc != nil {
			return loc
		}
	}

	if c := input.Coordinates; c != nil {
		place, dist, ok := h.lexicon.NearestCity(c.Lat, c.Lon, h.config.SnapRadiusKm)
		if !ok {
			h.logger.Debug("coordinates outside gazetteer", map[string]interface{}{
				"lat": c.Lat,
				"lon": c.Lon,
			})
			return nil
		}
		h.logger.Debug("coordinates snapped", map[string]interface{}{
			"city":       place.Name,
			"distanceKm": dist,
		})
		return &models.Location{Name: place.Name, State: place.State, Lat: c.Lat, Lon: c.Lon}
	}
	return nil
}

func (h *Handler) resolveName(ctx context.Context, name string) *models.Location {
	if place, ok := h.lexicon.FindPlace(name); ok {
		return locationOf(place)
	}
	if h.geocoder == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.GeocodeTimeout)
	defer cancel()

	loc, err := h.geocoder.Resolve(ctx, name)
	if err != nil {
		h.logger.WithError(err).Warn("caller location not resolved", map[string]interface{}{
			"locationName": name,
		})
		return nil
	}
	return loc
}

func locationOf(p lexicon.Place) *models.Location {
	return &models.Location{Name: p.Name, State: p.State, Lat: p.Lat, Lon: p.Lon}
}
