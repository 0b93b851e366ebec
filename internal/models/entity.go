// internal/models/entity.go
package models

type EntityType string

const (
	EntityLocation  EntityType = "location"
	EntityCommodity EntityType = "commodity"
	EntityDateRange EntityType = "date_range"
	EntitySeason    EntityType = "season"
)

// EntityOrigin records where an entity value came from.
type EntityOrigin string

const (
	OriginUtterance EntityOrigin = "utterance"
	OriginSibling   EntityOrigin = "sibling"
	OriginCaller    EntityOrigin = "caller"
	OriginSession   EntityOrigin = "session"
)

// Location is a canonical place resolved from the gazetteer or the geocoder.
type Location struct {
	Name  string  `json:"name"`
	State string  `json:"state,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether Lat/Lon were populated.
func (l *Location) HasCoordinates() bool {
	return l != nil && (l.Lat != 0 || l.Lon != 0)
}

type Entity struct {
	Type       EntityType   `json:"type"`
	Value      string       `json:"value"`
	Raw        string       `json:"raw,omitempty"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Confidence float64      `json:"confidence"`
	Inherited  bool         `json:"inherited,omitempty"`
	Origin     EntityOrigin `json:"origin"`
	Location   *Location    `json:"location,omitempty"`
}

// Inherit returns a copy of e marked as inherited from origin.
func (e Entity) Inherit(origin EntityOrigin) Entity {
	e.Inherited = true
	e.Origin = origin
	return e
}

// Entities is an ordered entity set.
type Entities []Entity

// First returns the first entity of type t.
func (es Entities) First(t EntityType) (Entity, bool) {
	for _, e := range es {
		if e.Type == t {
			return e, true
		}
	}
	return Entity{}, false
}

// All returns every entity of type t in order.
func (es Entities) All(t EntityType) Entities {
	var out Entities
	for _, e := range es {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (es Entities) Has(t EntityType) bool {
	_, ok := es.First(t)
	return ok
}

// Values returns canonical values of type t, deduplicated, in order.
func (es Entities) Values(t EntityType) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range es {
		if e.Type == t && !seen[e.Value] {
			seen[e.Value] = true
			out = append(out, e.Value)
		}
	}
	return out
}

// LocationOf returns the resolved location of the first location entity.
func (es Entities) LocationOf() *Location {
	e, ok := es.First(EntityLocation)
	if !ok {
		return nil
	}
	if e.Location != nil {
		return e.Location
	}
	return &Location{Name: e.Value}
}
