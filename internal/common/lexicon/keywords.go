package lexicon

// Family is a cluster of intent keywords.
type Family string

const (
	FamilyGreeting Family = "greeting"
	FamilyMarket   Family = "market"
	FamilyWeather  Family = "weather"
	FamilyCrop     Family = "crop"
	FamilyScheme   Family = "scheme"
)

var familyKeywords = map[Family][]string{
	FamilyGreeting: {
		"hi", "hii", "hello", "helo", "hey", "namaste", "namaskar", "namaskaar",
		"pranam", "salaam", "greetings", "नमस्ते", "नमस्कार", "प्रणाम",
	},
	FamilyMarket: {
		"price", "prices", "rate", "rates", "mandi", "market", "cost", "bhav", "bhaav",
		"daam", "kimat", "keemat", "qeemat", "भाव", "दाम", "कीमत", "मंडी", "रेट",
	},
	FamilyWeather: {
		"weather", "rain", "rains", "rainfall", "forecast", "temperature", "humidity",
		"monsoon", "barish", "baarish", "mausam", "mausum", "garmi", "thand",
		"मौसम", "बारिश", "वर्षा", "तापमान",
	},
	FamilyCrop: {
		"crop", "crops", "grow", "sow", "plant", "cultivate", "recommend", "recommendation",
		"suggest", "suggestion", "fasal", "fasl", "kheti", "ugana", "ugaun", "ugau",
		"lagaun", "lagau", "lagaye", "bona", "फसल", "खेती", "लगाऊं", "लगाऊँ", "उगाऊं",
		"उगाऊँ", "बोऊं", "सुझाव",
	},
	FamilyScheme: {
		"scheme", "schemes", "yojana", "yojna", "subsidy", "sarkari", "government", "govt",
		"insurance", "bima", "loan", "योजना", "योजनाएं", "सरकारी", "सब्सिडी", "बीमा",
	},
}

// hinglishWords are Latin-script Hindi tokens. Their presence marks text as
// Hinglish rather than English.
var hinglishWords = []string{
	"karo", "kro", "kariye", "batao", "btao", "bataiye", "bataye", "bataao", "bhai",
	"bhaiya", "mein", "aur", "bhi", "kya", "hai", "hain", "ka", "ki", "ke", "ko",
	"se", "kaisa", "kaise", "kaisi", "kitna", "kitne", "kitni", "mujhe", "hamare", "mera",
	"meri", "yahan", "aaj", "kal", "parso", "abhi", "liye", "kaun", "konsi", "kaunsi",
	"kab", "kahan", "ji", "acha", "accha", "theek", "chahiye", "wala", "wali", "sabse",
	"achhi", "dijiye", "boliye", "hoga", "hogi", "raha", "rahi", "agle", "hafte",
	"lagaun", "ugaun", "mausam", "bhav", "fasal", "yojana", "sarkari", "barish", "kheti",
	"daam", "keemat",
	"karna", "karni", "karne", "karun", "karein", "batana", "batane", "batayein",
	"jana", "jaana", "jaane", "jayega", "lena", "lene", "dena", "dene", "hona", "hone",
	"hota", "hoti", "hote", "rahega", "rahegi", "rahenge", "milega", "milegi", "milenge",
	"sakta", "sakte", "sakti", "chahte", "chahta", "lagana", "lagane", "ugana", "bechna",
	"bechne", "kharidna", "dekhna", "samjhao", "bolo", "tha", "thi",
}

var compoundMarkers = []string{
	"and", "aur", "also", "plus", "&", "bhi", "और", "तथा", "एवं", "भी",
}

var stopwordList = []string{
	"a", "an", "the", "is", "are", "was", "be", "will", "what", "whats", "which", "how",
	"when", "where", "who", "in", "on", "at", "of", "for", "to", "from", "by", "with",
	"me", "my", "i", "we", "our", "you", "your", "it", "this", "that", "there", "here",
	"please", "tell", "show", "give", "about", "can", "could", "should", "would", "do",
	"does", "any", "some", "best", "good", "now", "current", "today", "tomorrow",
	"week", "next", "latest", "near", "around", "like", "going", "know", "want", "need",
	"में", "का", "की", "के", "है", "हैं", "क्या", "बताओ", "बताइए", "बताएं", "करो", "कैसा",
	"कैसे", "मुझे", "लिए", "को", "से", "पर", "कौन", "सी", "भाई", "जी",
}
