// internal/workers/data-fusion/fetch-data/fallback.go
package fetchdata

import (
	"math"
	"strings"
	"time"

	"krishi-assistant/internal/models"
)

// FallbackSource labels answers built from the reference tables.
const FallbackSource = "reference table"

// defaultBasePrice is used for commodities without a table row (INR/quintal).
const defaultBasePrice = 2500

// basePrices are approximate all-India modal prices in INR per quintal.
var basePrices = map[string]float64{
	"potato":      1200,
	"onion":       1800,
	"tomato":      1500,
	"wheat":       2275,
	"rice":        2183,
	"maize":       2090,
	"mustard":     5650,
	"sugarcane":   340,
	"cotton":      6620,
	"soybean":     4600,
	"gram":        5440,
	"arhar":       7000,
	"moong":       8558,
	"masoor":      6425,
	"groundnut":   6377,
	"bajra":       2500,
	"barley":      1850,
	"cauliflower": 1400,
	"cabbage":     1000,
	"brinjal":     1300,
	"garlic":      8000,
	"ginger":      6000,
	"chilli":      9000,
	"banana":      1700,
	"mango":       4000,
	"jowar":       3180,
}

// stateMultipliers scale the base price by regional market conditions.
var stateMultipliers = map[string]float64{
	"Uttar Pradesh":    1.00,
	"Bihar":            0.95,
	"Punjab":           1.05,
	"Haryana":          1.05,
	"Delhi":            1.15,
	"Rajasthan":        1.00,
	"Madhya Pradesh":   0.95,
	"Maharashtra":      1.10,
	"Gujarat":          1.05,
	"Karnataka":        1.10,
	"Tamil Nadu":       1.10,
	"Kerala":           1.20,
	"Telangana":        1.05,
	"West Bengal":      1.00,
	"Odisha":           0.95,
	"Assam":            1.10,
	"Jharkhand":        0.95,
	"Chhattisgarh":     0.95,
	"Uttarakhand":      1.05,
	"Himachal Pradesh": 1.15,
}

type region string

const (
	regionNorth     region = "north"
	regionEast      region = "east"
	regionWest      region = "west"
	regionSouth     region = "south"
	regionCentral   region = "central"
	regionNortheast region = "northeast"
)

var stateRegions = map[string]region{
	"Uttar Pradesh":    regionNorth,
	"Punjab":           regionNorth,
	"Haryana":          regionNorth,
	"Delhi":            regionNorth,
	"Uttarakhand":      regionNorth,
	"Himachal Pradesh": regionNorth,
	"Rajasthan":        regionWest,
	"Gujarat":          regionWest,
	"Maharashtra":      regionWest,
	"Bihar":            regionEast,
	"Jharkhand":        regionEast,
	"West Bengal":      regionEast,
	"Odisha":           regionEast,
	"Assam":            regionNortheast,
	"Madhya Pradesh":   regionCentral,
	"Chhattisgarh":     regionCentral,
	"Karnataka":        regionSouth,
	"Tamil Nadu":       regionSouth,
	"Kerala":           regionSouth,
	"Telangana":        regionSouth,
}

// normal is a monthly climate normal.
type normal struct {
	maxC     float64
	minC     float64
	rainMM   float64 // monthly total
	humidity float64
}

// climateNormals are indexed by month-1.
var climateNormals = map[region][12]normal{
	regionNorth: {
		{21, 7, 18, 70}, {24, 10, 20, 62}, {30, 15, 12, 50}, {37, 21, 8, 35},
		{40, 26, 20, 35}, {39, 28, 90, 55}, {34, 27, 280, 78}, {33, 26, 260, 82},
		{33, 24, 170, 75}, {32, 19, 30, 62}, {28, 12, 5, 62}, {23, 8, 8, 68},
	},
	regionWest: {
		{25, 11, 2, 50}, {28, 13, 2, 42}, {33, 18, 2, 35}, {37, 23, 3, 30},
		{40, 27, 10, 35}, {38, 28, 70, 55}, {33, 26, 210, 75}, {31, 25, 200, 80},
		{33, 24, 100, 70}, {34, 20, 15, 50}, {31, 15, 4, 45}, {27, 12, 2, 48},
	},
	regionEast: {
		{24, 10, 12, 68}, {27, 13, 18, 60}, {33, 18, 15, 50}, {37, 23, 20, 52},
		{37, 25, 60, 62}, {35, 27, 200, 78}, {32, 26, 330, 85}, {32, 26, 300, 85},
		{32, 25, 230, 82}, {31, 21, 80, 75}, {29, 15, 10, 68}, {25, 11, 5, 68},
	},
	regionNortheast: {
		{23, 10, 15, 78}, {25, 12, 30, 70}, {28, 16, 70, 65}, {30, 20, 160, 72},
		{31, 23, 260, 80}, {31, 25, 330, 85}, {32, 25, 350, 86}, {32, 25, 290, 85},
		{31, 24, 230, 84}, {30, 21, 120, 82}, {27, 16, 20, 80}, {24, 11, 8, 80},
	},
	regionCentral: {
		{26, 10, 15, 55}, {29, 12, 12, 45}, {34, 17, 10, 35}, {39, 22, 5, 28},
		{41, 26, 10, 30}, {37, 26, 130, 55}, {31, 24, 320, 80}, {30, 23, 300, 83},
		{31, 22, 180, 75}, {31, 18, 35, 58}, {29, 13, 12, 52}, {26, 10, 8, 55},
	},
	regionSouth: {
		{30, 18, 5, 60}, {32, 19, 8, 55}, {34, 21, 12, 52}, {35, 23, 40, 58},
		{34, 23, 90, 65}, {30, 22, 100, 75}, {29, 21, 120, 78}, {29, 21, 140, 78},
		{29, 21, 170, 76}, {29, 21, 160, 75}, {28, 19, 70, 70}, {28, 18, 20, 65},
	},
}

// cropTable lists dependable crops per region and season.
var cropTable = map[region]map[string][]string{
	regionNorth: {
		"kharif": {"rice", "maize", "sugarcane", "arhar", "bajra"},
		"rabi":   {"wheat", "mustard", "potato", "gram", "barley"},
		"zaid":   {"moong", "cucumber", "watermelon", "maize"},
	},
	regionWest: {
		"kharif": {"cotton", "soybean", "bajra", "groundnut", "jowar"},
		"rabi":   {"wheat", "gram", "mustard", "onion", "cumin"},
		"zaid":   {"moong", "groundnut", "watermelon"},
	},
	regionEast: {
		"kharif": {"rice", "jute", "maize", "arhar"},
		"rabi":   {"wheat", "potato", "masoor", "mustard", "cauliflower"},
		"zaid":   {"moong", "rice", "vegetables"},
	},
	regionNortheast: {
		"kharif": {"rice", "jute", "maize", "ginger"},
		"rabi":   {"mustard", "potato", "masoor", "cabbage"},
		"zaid":   {"rice", "vegetables", "moong"},
	},
	regionCentral: {
		"kharif": {"soybean", "rice", "maize", "arhar", "cotton"},
		"rabi":   {"wheat", "gram", "masoor", "mustard"},
		"zaid":   {"moong", "urad", "watermelon"},
	},
	regionSouth: {
		"kharif": {"rice", "cotton", "groundnut", "maize", "chilli"},
		"rabi":   {"rice", "jowar", "gram", "groundnut", "banana"},
		"zaid":   {"moong", "watermelon", "vegetables"},
	},
}

var nationalSchemes = []models.Scheme{
	{
		Name:        "PM-KISAN",
		Description: "Income support for landholding farmer families.",
		Benefit:     "₹6,000 per year in three instalments",
		URL:         "https://pmkisan.gov.in",
	},
	{
		Name:        "Pradhan Mantri Fasal Bima Yojana",
		Description: "Crop insurance against yield loss from natural calamities, pests and disease.",
		Benefit:     "Premium of 2% for kharif and 1.5% for rabi crops",
		URL:         "https://pmfby.gov.in",
	},
	{
		Name:        "Kisan Credit Card",
		Description: "Short-term crop loans for cultivation and allied activities.",
		Benefit:     "Interest subvention on loans up to ₹3 lakh",
		URL:         "https://www.myscheme.gov.in/schemes/kcc",
	},
	{
		Name:        "Soil Health Card",
		Description: "Soil testing with crop-wise nutrient recommendations.",
		URL:         "https://soilhealth.dac.gov.in",
	},
	{
		Name:        "PM-KUSUM",
		Description: "Subsidy for solar pumps and grid-connected solar plants on farms.",
		URL:         "https://pmkusum.mnre.gov.in",
	},
	{
		Name:        "e-NAM",
		Description: "Online national agriculture market for trading produce across mandis.",
		URL:         "https://enam.gov.in",
	},
}

// Fallback builds deterministic estimates from static reference tables. The
// same request always yields the same payload.
type Fallback struct {
	seasonOf func(month int) string
	now      func() time.Time
}

func NewFallback(seasonOf func(month int) string, now func() time.Time) *Fallback {
	if now == nil {
		now = time.Now
	}
	return &Fallback{seasonOf: seasonOf, now: now}
}

// For returns the estimate for req, or nil when the intent has no table.
func (f *Fallback) For(req models.FetchRequest) models.Payload {
	switch req.Intent {
	case models.IntentMarketPrice:
		return f.price(req)
	case models.IntentWeather:
		return f.weather(req)
	case models.IntentCropRecommendation:
		return f.crops(req)
	case models.IntentGovernmentScheme:
		return f.schemes(req)
	}
	return nil
}

// FallbackPrice is the reference price for a commodity in a state, rounded
// to the nearest ten rupees.
func FallbackPrice(commodity, state string) float64 {
	base, ok := basePrices[strings.ToLower(commodity)]
	if !ok {
		base = defaultBasePrice
	}
	mult, ok := stateMultipliers[state]
	if !ok {
		mult = 1
	}
	return roundTo(base*mult, 10)
}

func (f *Fallback) price(req models.FetchRequest) models.Payload {
	loc := locationOf(req)
	price := FallbackPrice(req.Commodity, loc.State)
	return &models.MarketPrice{
		Commodity: req.Commodity,
		Location:  loc.Name,
		State:     loc.State,
		Price:     price,
		MinPrice:  roundTo(price*0.9, 10),
		MaxPrice:  roundTo(price*1.1, 10),
		Unit:      "quintal",
	}
}

func (f *Fallback) weather(req models.FetchRequest) models.Payload {
	loc := locationOf(req)
	month := f.month(req.DateRange)
	n := climateNormals[regionOf(loc.State)][month-1]

	daily := roundTo(n.rainMM/30, 0.1)
	return &models.WeatherReport{
		Location:     loc.Name,
		TemperatureC: roundTo((n.maxC+n.minC)/2, 0.1),
		HumidityPc:   n.humidity,
		RainMM:       daily,
		Condition:    conditionForRain(daily),
		Daily: []models.DailyForecast{{
			MaxTempC: n.maxC,
			MinTempC: n.minC,
			RainMM:   daily,
		}},
	}
}

func (f *Fallback) crops(req models.FetchRequest) models.Payload {
	loc := locationOf(req)
	season := req.Season
	if season == "" && f.seasonOf != nil {
		season = f.seasonOf(int(f.now().Month()))
	}

	var out []models.CropSuggestion
	for _, c := range cropTable[regionOf(loc.State)][season] {
		out = append(out, models.CropSuggestion{Crop: c})
	}
	return &models.CropAdvice{
		Location: loc.Name,
		State:    loc.State,
		Season:   season,
		Crops:    out,
	}
}

func (f *Fallback) schemes(req models.FetchRequest) models.Payload {
	schemes := make([]models.Scheme, len(nationalSchemes))
	copy(schemes, nationalSchemes)
	return &models.SchemeList{
		Query:   req.Query,
		State:   locationOf(req).State,
		Schemes: schemes,
	}
}

// month picks the month of the first requested day, else the current month.
func (f *Fallback) month(dateRange string) int {
	if dateRange != "" {
		start, _, _ := strings.Cut(dateRange, "/")
		if t, err := time.Parse("2006-01-02", start); err == nil {
			return int(t.Month())
		}
	}
	return int(f.now().Month())
}

func locationOf(req models.FetchRequest) models.Location {
	if req.Location == nil {
		return models.Location{}
	}
	return *req.Location
}

func regionOf(state string) region {
	if r, ok := stateRegions[state]; ok {
		return r
	}
	return regionNorth
}

func conditionForRain(mmPerDay float64) string {
	switch {
	case mmPerDay >= 5:
		return "rain"
	case mmPerDay >= 1.5:
		return "partly_cloudy"
	default:
		return "clear"
	}
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
