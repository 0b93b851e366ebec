// pkg/registry/schema.go
package registry

// LexiconRegistry is the on-disk format for vocabulary additions loaded at
// startup.
type LexiconRegistry struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated,omitempty"`
	Locations   []LocationEntry  `json:"locations,omitempty"`
	Commodities []CommodityEntry `json:"commodities,omitempty"`
}

type LocationEntry struct {
	Name    string   `json:"name"`
	State   string   `json:"state"`
	Kind    string   `json:"kind,omitempty"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Aliases []string `json:"aliases,omitempty"`
}

type CommodityEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

const registrySchema = `{
  "type": "object",
  "required": ["version"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "locations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "state", "lat", "lon"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "state": {"type": "string", "minLength": 1},
          "kind": {"enum": ["city", "state"]},
          "lat": {"type": "number", "minimum": -90, "maximum": 90},
          "lon": {"type": "number", "minimum": -180, "maximum": 180},
          "aliases": {"type": "array", "items": {"type": "string", "minLength": 1}}
        }
      }
    },
    "commodities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "aliases": {"type": "array", "items": {"type": "string", "minLength": 1}}
        }
      }
    }
  }
}`
