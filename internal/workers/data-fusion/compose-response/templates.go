// internal/workers/data-fusion/compose-response/templates.go
package composeresponse

import "krishi-assistant/internal/models"

// phrasebook holds the sentence templates for one response language.
type phrasebook struct {
	greeting          string
	general           string
	price             string // commodity, place, price, label
	priceList         string // place, quotes, label
	quote             string // commodity, price
	weather           string // place, condition, temperature, humidity, rain, label
	outlook           string // days, max temperature, total rain
	crops             string // season, place, crops, label
	noCrops           string // season, place, label
	schemes           string // schemes, label
	clarifyLocation   string
	clarifyCommodity  string
	noData            string
	liveLabel         string // source
	cachedLabel       string // HH:MM
	fallbackLabel     string
	listSeparator     string
	sentenceSeparator string
}

var phrasebooks = map[models.Language]phrasebook{
	models.LanguageEnglish: {
		greeting:          "Namaste! I can help with mandi prices, weather, crop suggestions and government schemes.",
		general:           "I can answer questions about crop prices, weather, what to grow and government schemes. Please ask me about one of these.",
		price:             "The price of %s in %s is %s per quintal %s.",
		priceList:         "Prices in %s: %s per quintal %s.",
		quote:             "%s %s",
		weather:           "Weather in %s: %s, %.0f°C, humidity %.0f%%, rain %.1f mm %s.",
		outlook:           "Next %d days: up to %.0f°C with %.1f mm rain in total.",
		crops:             "Good %s crops for %s: %s %s.",
		noCrops:           "I have no %s crop suggestions for %s yet %s.",
		schemes:           "Government schemes you can look at: %s %s.",
		clarifyLocation:   "Please tell me your city or district so I can look that up.",
		clarifyCommodity:  "Which crop or commodity would you like the price for?",
		noData:            "Sorry, I could not find that information right now.",
		liveLabel:         "(source: %s)",
		cachedLabel:       "(as of %s)",
		fallbackLabel:     "(estimate)",
		listSeparator:     ", ",
		sentenceSeparator: " ",
	},
	models.LanguageHindi: {
		greeting:          "नमस्ते! मैं मंडी भाव, मौसम, फसल सुझाव और सरकारी योजनाओं में आपकी मदद कर सकता हूँ।",
		general:           "मैं फसल के भाव, मौसम, कौन सी फसल लगाएं और सरकारी योजनाओं के बारे में बता सकता हूँ। कृपया इनमें से कुछ पूछें।",
		price:             "%[2]s में %[1]s का भाव %[3]s प्रति क्विंटल है %[4]s।",
		priceList:         "%s में भाव: %s प्रति क्विंटल %s।",
		quote:             "%s %s",
		weather:           "%s का मौसम: %s, %.0f°C, नमी %.0f%%, बारिश %.1f मिमी %s।",
		outlook:           "अगले %d दिन: अधिकतम %.0f°C, कुल %.1f मिमी बारिश।",
		crops:             "%[2]s में %[1]s के लिए अच्छी फसलें: %[3]s %[4]s।",
		noCrops:           "%[2]s में %[1]s के लिए अभी कोई सुझाव नहीं है %[3]s।",
		schemes:           "आप इन सरकारी योजनाओं को देख सकते हैं: %s %s।",
		clarifyLocation:   "कृपया अपना शहर या जिला बताएं ताकि मैं जानकारी दे सकूं।",
		clarifyCommodity:  "आप किस फसल का भाव जानना चाहते हैं?",
		noData:            "माफ़ कीजिए, अभी यह जानकारी नहीं मिल पाई।",
		liveLabel:         "(स्रोत: %s)",
		cachedLabel:       "(%s तक की जानकारी)",
		fallbackLabel:     "(अनुमान)",
		listSeparator:     ", ",
		sentenceSeparator: " ",
	},
	models.LanguageHinglish: {
		greeting:          "Namaste! Main mandi bhav, mausam, fasal salah aur sarkari yojana mein madad kar sakta hoon.",
		general:           "Main fasal ke bhav, mausam, kaunsi fasal lagayein aur sarkari yojana ke baare mein bata sakta hoon. Inmein se kuch poochiye.",
		price:             "%[2]s mein %[1]s ka bhav %[3]s prati quintal hai %[4]s.",
		priceList:         "%s mein bhav: %s prati quintal %s.",
		quote:             "%s %s",
		weather:           "%s ka mausam: %s, %.0f°C, nami %.0f%%, baarish %.1f mm %s.",
		outlook:           "Agle %d din: adhiktam %.0f°C, kul %.1f mm baarish.",
		crops:             "%[2]s mein %[1]s ke liye achhi faslein: %[3]s %[4]s.",
		noCrops:           "%[2]s mein %[1]s ke liye abhi koi salah nahi hai %[3]s.",
		schemes:           "Aap in sarkari yojanaon ko dekh sakte hain: %s %s.",
		clarifyLocation:   "Kripya apna shahar ya zila batayein taaki main jaankari de sakoon.",
		clarifyCommodity:  "Aap kis fasal ka bhav jaanna chahte hain?",
		noData:            "Maaf kijiye, abhi yeh jaankari nahi mil payi.",
		liveLabel:         "(source: %s)",
		cachedLabel:       "(%s tak ki jaankari)",
		fallbackLabel:     "(andaza)",
		listSeparator:     ", ",
		sentenceSeparator: " ",
	},
}

// conditions maps weather condition keys to display text per language.
var conditions = map[string]map[models.Language]string{
	"clear":         {models.LanguageEnglish: "clear sky", models.LanguageHindi: "साफ़ आसमान", models.LanguageHinglish: "saaf aasmaan"},
	"partly_cloudy": {models.LanguageEnglish: "partly cloudy", models.LanguageHindi: "आंशिक बादल", models.LanguageHinglish: "halke badal"},
	"overcast":      {models.LanguageEnglish: "overcast", models.LanguageHindi: "घने बादल", models.LanguageHinglish: "ghane badal"},
	"fog":           {models.LanguageEnglish: "foggy", models.LanguageHindi: "कोहरा", models.LanguageHinglish: "kohra"},
	"drizzle":       {models.LanguageEnglish: "light drizzle", models.LanguageHindi: "हल्की बूंदाबांदी", models.LanguageHinglish: "halki boondabaandi"},
	"rain":          {models.LanguageEnglish: "rain", models.LanguageHindi: "बारिश", models.LanguageHinglish: "baarish"},
	"snow":          {models.LanguageEnglish: "snow", models.LanguageHindi: "बर्फबारी", models.LanguageHinglish: "barfbaari"},
	"showers":       {models.LanguageEnglish: "rain showers", models.LanguageHindi: "बौछारें", models.LanguageHinglish: "bauchhar"},
	"thunderstorm":  {models.LanguageEnglish: "thunderstorm", models.LanguageHindi: "आंधी-तूफान", models.LanguageHinglish: "aandhi toofan"},
}

var seasonNames = map[string]map[models.Language]string{
	"kharif": {models.LanguageHindi: "खरीफ"},
	"rabi":   {models.LanguageHindi: "रबी"},
	"zaid":   {models.LanguageHindi: "जायद"},
}

// cropNames localizes commodity and crop names. English uses the canonical
// name as is.
var cropNames = map[string]map[models.Language]string{
	"potato":      {models.LanguageHindi: "आलू", models.LanguageHinglish: "aloo"},
	"onion":       {models.LanguageHindi: "प्याज", models.LanguageHinglish: "pyaz"},
	"tomato":      {models.LanguageHindi: "टमाटर", models.LanguageHinglish: "tamatar"},
	"wheat":       {models.LanguageHindi: "गेहूं", models.LanguageHinglish: "gehun"},
	"rice":        {models.LanguageHindi: "धान", models.LanguageHinglish: "dhaan"},
	"maize":       {models.LanguageHindi: "मक्का", models.LanguageHinglish: "makka"},
	"mustard":     {models.LanguageHindi: "सरसों", models.LanguageHinglish: "sarson"},
	"sugarcane":   {models.LanguageHindi: "गन्ना", models.LanguageHinglish: "ganna"},
	"cotton":      {models.LanguageHindi: "कपास", models.LanguageHinglish: "kapas"},
	"soybean":     {models.LanguageHindi: "सोयाबीन", models.LanguageHinglish: "soyabean"},
	"gram":        {models.LanguageHindi: "चना", models.LanguageHinglish: "chana"},
	"arhar":       {models.LanguageHindi: "अरहर", models.LanguageHinglish: "arhar"},
	"moong":       {models.LanguageHindi: "मूंग", models.LanguageHinglish: "moong"},
	"masoor":      {models.LanguageHindi: "मसूर", models.LanguageHinglish: "masoor"},
	"groundnut":   {models.LanguageHindi: "मूंगफली", models.LanguageHinglish: "moongfali"},
	"bajra":       {models.LanguageHindi: "बाजरा", models.LanguageHinglish: "bajra"},
	"barley":      {models.LanguageHindi: "जौ", models.LanguageHinglish: "jau"},
	"cauliflower": {models.LanguageHindi: "फूलगोभी", models.LanguageHinglish: "phool gobhi"},
	"cabbage":     {models.LanguageHindi: "पत्तागोभी", models.LanguageHinglish: "patta gobhi"},
	"brinjal":     {models.LanguageHindi: "बैंगन", models.LanguageHinglish: "baingan"},
	"garlic":      {models.LanguageHindi: "लहसुन", models.LanguageHinglish: "lehsun"},
	"ginger":      {models.LanguageHindi: "अदरक", models.LanguageHinglish: "adrak"},
	"chilli":      {models.LanguageHindi: "मिर्च", models.LanguageHinglish: "mirch"},
	"banana":      {models.LanguageHindi: "केला", models.LanguageHinglish: "kela"},
	"mango":       {models.LanguageHindi: "आम", models.LanguageHinglish: "aam"},
	"jowar":       {models.LanguageHindi: "ज्वार", models.LanguageHinglish: "jowar"},
	"jute":        {models.LanguageHindi: "जूट", models.LanguageHinglish: "jute"},
	"urad":        {models.LanguageHindi: "उड़द", models.LanguageHinglish: "urad"},
	"cumin":       {models.LanguageHindi: "जीरा", models.LanguageHinglish: "jeera"},
	"cucumber":    {models.LanguageHindi: "खीरा", models.LanguageHinglish: "kheera"},
	"watermelon":  {models.LanguageHindi: "तरबूज", models.LanguageHinglish: "tarbooz"},
	"vegetables":  {models.LanguageHindi: "सब्ज़ियां", models.LanguageHinglish: "sabziyan"},
}

func localize(table map[string]map[models.Language]string, key string, lang models.Language) string {
	if byLang, ok := table[key]; ok {
		if s, ok := byLang[lang]; ok {
			return s
		}
	}
	return key
}
