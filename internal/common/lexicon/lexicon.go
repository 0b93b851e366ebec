// Package lexicon holds the gazetteer, commodity and season vocabularies and
// the keyword families shared by the query-understanding stages.
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// PlaceKind separates cities from states in the gazetteer.
type PlaceKind string

const (
	PlaceCity  PlaceKind = "city"
	PlaceState PlaceKind = "state"
)

type Place struct {
	Name    string
	State   string
	Kind    PlaceKind
	Lat     float64
	Lon     float64
	Aliases []string
}

type Commodity struct {
	Name    string
	Aliases []string
}

type Season struct {
	Name    string
	Aliases []string
	// Months lists the calendar months in which the season is sown.
	Months []int
}

// Hit is the result of an alias lookup. Canonical is true when the phrase
// equals the entry's canonical name rather than one of its aliases.
type Hit struct {
	Index     int
	Canonical bool
}

// FuzzyHit is a single-token near miss.
type FuzzyHit struct {
	Index    int
	Distance int
}

type index struct {
	phrases map[string]Hit
	// single lists one-token aliases long enough to fuzzy match against.
	single []fuzzyEntry
}

type fuzzyEntry struct {
	alias string
	index int
}

// Lexicon is immutable after New returns and safe for concurrent use.
type Lexicon struct {
	places      []Place
	commodities []Commodity
	seasons     []Season

	placeIdx     index
	commodityIdx index
	seasonIdx    index

	families  map[string]Family
	greetings map[string]bool
	hinglish  map[string]bool
	markers   map[string]bool
	stopwords map[string]bool
	months    map[string]int
	relative  map[string]RelativeDate

	maxPhrase int
}

// Option extends the built-in vocabularies.
type Option func(*builder)

type builder struct {
	places      []Place
	commodities []Commodity
}

// WithPlaces adds gazetteer entries. An entry whose name already exists has
// its aliases merged.
func WithPlaces(places ...Place) Option {
	return func(b *builder) { b.places = append(b.places, places...) }
}

// WithCommodities adds commodity entries, merging aliases by name.
func WithCommodities(commodities ...Commodity) Option {
	return func(b *builder) { b.commodities = append(b.commodities, commodities...) }
}

// New builds a lexicon from the built-in tables plus any options.
func New(opts ...Option) *Lexicon {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	l := &Lexicon{
		places:      mergePlaces(append(append([]Place(nil), gazetteer...), b.places...)),
		commodities: mergeCommodities(append(append([]Commodity(nil), commodityTable...), b.commodities...)),
		seasons:     append([]Season(nil), seasonTable...),
		families:    make(map[string]Family),
		greetings:   make(map[string]bool),
		hinglish:    toSet(hinglishWords),
		markers:     toSet(compoundMarkers),
		stopwords:   toSet(stopwordList),
		months:      make(map[string]int),
		relative:    make(map[string]RelativeDate),
	}

	l.placeIdx = l.buildIndex(len(l.places), func(i int) (string, []string) {
		return l.places[i].Name, l.places[i].Aliases
	})
	l.commodityIdx = l.buildIndex(len(l.commodities), func(i int) (string, []string) {
		return l.commodities[i].Name, l.commodities[i].Aliases
	})
	l.seasonIdx = l.buildIndex(len(l.seasons), func(i int) (string, []string) {
		return l.seasons[i].Name, l.seasons[i].Aliases
	})

	for fam, words := range familyKeywords {
		for _, w := range words {
			l.families[Fold(w)] = fam
		}
	}
	for _, w := range familyKeywords[FamilyGreeting] {
		l.greetings[Fold(w)] = true
	}
	for name, m := range monthNames {
		l.months[Fold(name)] = m
	}
	for phrase, rel := range relativeDates {
		key := Fold(phrase)
		l.relative[key] = rel
		l.track(key)
	}

	return l
}

func (l *Lexicon) buildIndex(n int, entry func(int) (string, []string)) index {
	idx := index{phrases: make(map[string]Hit)}
	for i := 0; i < n; i++ {
		name, aliases := entry(i)
		key := Fold(name)
		idx.phrases[key] = Hit{Index: i, Canonical: true}
		l.track(key)
		idx.addFuzzy(key, i)
		for _, a := range aliases {
			ak := Fold(a)
			if _, exists := idx.phrases[ak]; !exists {
				idx.phrases[ak] = Hit{Index: i}
			}
			l.track(ak)
			idx.addFuzzy(ak, i)
		}
	}
	return idx
}

func (idx *index) addFuzzy(key string, i int) {
	if strings.Contains(key, " ") || utf8.RuneCountInString(key) < MinFuzzyRunes {
		return
	}
	idx.single = append(idx.single, fuzzyEntry{alias: key, index: i})
}

func (l *Lexicon) track(key string) {
	if n := len(strings.Fields(key)); n > l.maxPhrase {
		l.maxPhrase = n
	}
}

// MinFuzzyRunes is the shortest token considered for edit-distance matching.
const MinFuzzyRunes = 4

// Fold canonicalises text the way the normalizer does: NFC, case folded,
// single spaced.
func Fold(s string) string {
	s = cases.Fold().String(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// MaxPhraseTokens is the longest alias length in tokens.
func (l *Lexicon) MaxPhraseTokens() int {
	return l.maxPhrase
}

func (l *Lexicon) Places() []Place {
	return append([]Place(nil), l.places...)
}

func (l *Lexicon) Place(i int) Place {
	return l.places[i]
}

func (l *Lexicon) Commodity(i int) Commodity {
	return l.commodities[i]
}

func (l *Lexicon) Season(i int) Season {
	return l.seasons[i]
}

// LookupPlace matches a folded phrase against city and state names.
func (l *Lexicon) LookupPlace(phrase string) (Hit, bool) {
	h, ok := l.placeIdx.phrases[phrase]
	return h, ok
}

func (l *Lexicon) LookupCommodity(phrase string) (Hit, bool) {
	h, ok := l.commodityIdx.phrases[phrase]
	return h, ok
}

func (l *Lexicon) LookupSeason(phrase string) (Hit, bool) {
	h, ok := l.seasonIdx.phrases[phrase]
	return h, ok
}

// FindPlace resolves a free-form name through the gazetteer, exact or fuzzy.
func (l *Lexicon) FindPlace(name string) (Place, bool) {
	key := Fold(name)
	if h, ok := l.placeIdx.phrases[key]; ok {
		return l.places[h.Index], true
	}
	if fh, ok := l.FuzzyPlace(key); ok {
		return l.places[fh.Index], true
	}
	return Place{}, false
}

// FuzzyPlace finds the closest single-token place alias within the allowed
// edit distance. Aliases more than one rune longer or shorter than the token
// are skipped.
func (l *Lexicon) FuzzyPlace(token string) (FuzzyHit, bool) {
	return l.fuzzy(l.placeIdx, token)
}

func (l *Lexicon) FuzzyCommodity(token string) (FuzzyHit, bool) {
	return l.fuzzy(l.commodityIdx, token)
}

// MaxDistance is the edit budget for a token: one edit for short tokens, two
// from six runes up.
func MaxDistance(token string) int {
	n := utf8.RuneCountInString(token)
	switch {
	case n < MinFuzzyRunes:
		return 0
	case n < 6:
		return 1
	default:
		return 2
	}
}

func (l *Lexicon) fuzzy(idx index, token string) (FuzzyHit, bool) {
	budget := MaxDistance(token)
	if budget == 0 || l.IsReserved(token) {
		return FuzzyHit{}, false
	}
	first, _ := utf8.DecodeRuneInString(token)

	best := FuzzyHit{Distance: budget + 1}
	for _, e := range idx.single {
		r, _ := utf8.DecodeRuneInString(e.alias)
		if r != first {
			continue
		}
		if gap := utf8.RuneCountInString(e.alias) - utf8.RuneCountInString(token); gap > 1 || gap < -1 {
			continue
		}
		d := levenshtein.ComputeDistance(token, e.alias)
		if d == 0 || d > budget {
			continue
		}
		if d < best.Distance {
			best = FuzzyHit{Index: e.index, Distance: d}
		}
	}
	if best.Distance > budget {
		return FuzzyHit{}, false
	}
	return best, true
}

// FamilyOf returns the intent keyword family of a token.
func (l *Lexicon) FamilyOf(token string) (Family, bool) {
	f, ok := l.families[token]
	return f, ok
}

func (l *Lexicon) IsGreeting(token string) bool {
	return l.greetings[token]
}

// IsRomanizedHindi reports whether a Latin token is a known Hindi word.
func (l *Lexicon) IsRomanizedHindi(token string) bool {
	return l.hinglish[token]
}

func (l *Lexicon) IsMarker(token string) bool {
	return l.markers[token]
}

// IsReserved reports whether a token is a function word, marker or keyword
// and therefore never an entity candidate.
func (l *Lexicon) IsReserved(token string) bool {
	if l.stopwords[token] || l.hinglish[token] || l.markers[token] {
		return true
	}
	_, kw := l.families[token]
	return kw
}

// Month resolves an English or Hindi month name to 1..12.
func (l *Lexicon) Month(token string) (int, bool) {
	m, ok := l.months[token]
	return m, ok
}

func (l *Lexicon) RelativeDate(phrase string) (RelativeDate, bool) {
	r, ok := l.relative[phrase]
	return r, ok
}

// SeasonForMonth returns the sowing season active in month m.
func (l *Lexicon) SeasonForMonth(m int) string {
	for _, s := range l.seasons {
		for _, sm := range s.Months {
			if sm == m {
				return s.Name
			}
		}
	}
	return l.seasons[0].Name
}

func toSet(words []string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[Fold(w)] = true
	}
	return out
}

func mergePlaces(in []Place) []Place {
	pos := make(map[string]int)
	var out []Place
	for _, p := range in {
		key := Fold(p.Name) + "|" + string(p.Kind)
		if i, ok := pos[key]; ok {
			out[i].Aliases = appendUnique(out[i].Aliases, p.Aliases...)
			continue
		}
		pos[key] = len(out)
		p.Aliases = append([]string(nil), p.Aliases...)
		out = append(out, p)
	}
	return out
}

func mergeCommodities(in []Commodity) []Commodity {
	pos := make(map[string]int)
	var out []Commodity
	for _, c := range in {
		key := Fold(c.Name)
		if i, ok := pos[key]; ok {
			out[i].Aliases = appendUnique(out[i].Aliases, c.Aliases...)
			continue
		}
		pos[key] = len(out)
		c.Name = key
		c.Aliases = append([]string(nil), c.Aliases...)
		out = append(out, c)
	}
	return out
}

func appendUnique(dst []string, vals ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, d := range dst {
		seen[Fold(d)] = true
	}
	for _, v := range vals {
		if !seen[Fold(v)] {
			seen[Fold(v)] = true
			dst = append(dst, v)
		}
	}
	return dst
}

// CommodityNames lists canonical commodity names in sorted order.
func (l *Lexicon) CommodityNames() []string {
	out := make([]string, len(l.commodities))
	for i, c := range l.commodities {
		out[i] = c.Name
	}
	sort.Strings(out)
	return out
}
