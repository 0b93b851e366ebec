// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/validation"
)

var schema = validation.MustCompile("lexicon-registry", registrySchema)

// LoadRegistry reads and validates a lexicon registry file.
func LoadRegistry(path string) (*LexiconRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data against the registry schema and decodes it.
func Parse(data []byte) (*LexiconRegistry, error) {
	res, err := schema.ValidateBytes(data)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, fmt.Errorf("invalid lexicon registry: %s", res.Summary())
	}

	var reg LexiconRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Options converts the registry into lexicon build options.
func (r *LexiconRegistry) Options() []lexicon.Option {
	places := make([]lexicon.Place, 0, len(r.Locations))
	for _, l := range r.Locations {
		kind := lexicon.PlaceCity
		if l.Kind == string(lexicon.PlaceState) {
			kind = lexicon.PlaceState
		}
		places = append(places, lexicon.Place{
			Name:    l.Name,
			State:   l.State,
			Kind:    kind,
			Lat:     l.Lat,
			Lon:     l.Lon,
			Aliases: l.Aliases,
		})
	}

	commodities := make([]lexicon.Commodity, 0, len(r.Commodities))
	for _, c := range r.Commodities {
		commodities = append(commodities, lexicon.Commodity{Name: c.Name, Aliases: c.Aliases})
	}

	return []lexicon.Option{
		lexicon.WithPlaces(places...),
		lexicon.WithCommodities(commodities...),
	}
}

// Save writes the registry as indented JSON, creating parent directories.
func (r *LexiconRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// AddLocation appends a location. Names are unique case-insensitively.
func (r *LexiconRegistry) AddLocation(entry LocationEntry) error {
	for _, l := range r.Locations {
		if strings.EqualFold(l.Name, entry.Name) {
			return fmt.Errorf("location %s already exists", entry.Name)
		}
	}
	r.Locations = append(r.Locations, entry)
	return nil
}

// AddCommodityAliases adds aliases to a commodity, creating it if needed.
// Aliases already present are skipped.
func (r *LexiconRegistry) AddCommodityAliases(name string, aliases ...string) {
	for i := range r.Commodities {
		if strings.EqualFold(r.Commodities[i].Name, name) {
			r.Commodities[i].Aliases = appendMissing(r.Commodities[i].Aliases, aliases)
			return
		}
	}
	r.Commodities = append(r.Commodities, CommodityEntry{Name: name, Aliases: appendMissing(nil, aliases)})
}

// Validate checks the registry against the schema and for duplicate names
// and aliases that would make lookups ambiguous.
func (r *LexiconRegistry) Validate() error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := Parse(data); err != nil {
		return err
	}

	seen := make(map[string]string)
	claim := func(key, owner string) error {
		key = lexicon.Fold(key)
		if prev, ok := seen[key]; ok && prev != owner {
			return fmt.Errorf("%q is used by both %s and %s", key, prev, owner)
		}
		seen[key] = owner
		return nil
	}

	for _, l := range r.Locations {
		owner := "location " + l.Name
		for _, key := range append([]string{l.Name}, l.Aliases...) {
			if err := claim(key, owner); err != nil {
				return err
			}
		}
	}
	for _, c := range r.Commodities {
		owner := "commodity " + c.Name
		for _, key := range append([]string{c.Name}, c.Aliases...) {
			if err := claim(key, owner); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendMissing(dst []string, vals []string) []string {
	for _, v := range vals {
		found := false
		for _, d := range dst {
			if strings.EqualFold(d, v) {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
