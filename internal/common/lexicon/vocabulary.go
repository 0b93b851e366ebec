package lexicon

var commodityTable = []Commodity{
	{Name: "potato", Aliases: []string{"potatoes", "aloo", "alu", "aaloo", "batata", "आलू"}},
	{Name: "onion", Aliases: []string{"onions", "pyaz", "pyaaz", "pyaj", "kanda", "प्याज", "प्याज़"}},
	{Name: "tomato", Aliases: []string{"tomatoes", "tamatar", "टमाटर"}},
	{Name: "wheat", Aliases: []string{"gehun", "gehu", "gehoon", "gahu", "गेहूं", "गेहूँ", "गेहू"}},
	{Name: "rice", Aliases: []string{"paddy", "chawal", "chaval", "dhan", "dhaan", "चावल", "धान"}},
	{Name: "maize", Aliases: []string{"corn", "makka", "makki", "मक्का"}},
	{Name: "mustard", Aliases: []string{"sarson", "sarso", "rapeseed", "सरसों"}},
	{Name: "sugarcane", Aliases: []string{"ganna", "गन्ना"}},
	{Name: "cotton", Aliases: []string{"kapas", "कपास"}},
	{Name: "soybean", Aliases: []string{"soyabean", "soya", "सोयाबीन"}},
	{Name: "gram", Aliases: []string{"chickpea", "chana", "चना"}},
	{Name: "arhar", Aliases: []string{"tur", "toor", "pigeon pea", "अरहर", "तुअर"}},
	{Name: "moong", Aliases: []string{"green gram", "mung", "मूंग"}},
	{Name: "masoor", Aliases: []string{"lentil", "masur", "मसूर"}},
	{Name: "groundnut", Aliases: []string{"peanut", "moongfali", "mungfali", "मूंगफली"}},
	{Name: "bajra", Aliases: []string{"pearl millet", "बाजरा"}},
	{Name: "barley", Aliases: []string{"jau", "जौ"}},
	{Name: "cauliflower", Aliases: []string{"phool gobhi", "gobhi", "फूलगोभी", "गोभी"}},
	{Name: "cabbage", Aliases: []string{"patta gobhi", "band gobhi", "पत्तागोभी"}},
	{Name: "brinjal", Aliases: []string{"eggplant", "baingan", "बैंगन"}},
	{Name: "garlic", Aliases: []string{"lahsun", "lehsun", "लहसुन"}},
	{Name: "ginger", Aliases: []string{"adrak", "अदरक"}},
	{Name: "chilli", Aliases: []string{"chili", "mirch", "mirchi", "मिर्च"}},
	{Name: "banana", Aliases: []string{"kela", "केला"}},
	{Name: "mango", Aliases: []string{"aam", "आम"}},
}

var seasonTable = []Season{
	{Name: "kharif", Aliases: []string{"khareef", "kharief", "monsoon crop", "खरीफ", "ख़रीफ़"}, Months: []int{6, 7, 8, 9}},
	{Name: "rabi", Aliases: []string{"rabbi", "winter crop", "रबी"}, Months: []int{10, 11, 12, 1, 2}},
	{Name: "zaid", Aliases: []string{"zayed", "jayad", "summer crop", "जायद"}, Months: []int{3, 4, 5}},
}

var monthNames = map[string]int{
	"january": 1, "jan": 1, "जनवरी": 1,
	"february": 2, "feb": 2, "फरवरी": 2,
	"march": 3, "mar": 3, "मार्च": 3,
	"april": 4, "apr": 4, "अप्रैल": 4,
	"may": 5, "मई": 5,
	"june": 6, "jun": 6, "जून": 6,
	"july": 7, "jul": 7, "जुलाई": 7,
	"august": 8, "aug": 8, "अगस्त": 8,
	"september": 9, "sep": 9, "sept": 9, "सितंबर": 9,
	"october": 10, "oct": 10, "अक्टूबर": 10,
	"november": 11, "nov": 11, "नवंबर": 11,
	"december": 12, "dec": 12, "दिसंबर": 12,
}

// RelativeDate is a date phrase resolved against the request clock.
type RelativeDate struct {
	// OffsetDays is the first day relative to today.
	OffsetDays int
	// Days is the length of the range, at least one.
	Days int
	// Week aligns the range to a Monday-started week, OffsetDays weeks out.
	Week bool
}

var relativeDates = map[string]RelativeDate{
	"today":              {Days: 1},
	"aaj":                {Days: 1},
	"आज":                 {Days: 1},
	"tomorrow":           {OffsetDays: 1, Days: 1},
	"kal":                {OffsetDays: 1, Days: 1},
	"कल":                 {OffsetDays: 1, Days: 1},
	"day after tomorrow": {OffsetDays: 2, Days: 1},
	"parso":              {OffsetDays: 2, Days: 1},
	"parson":             {OffsetDays: 2, Days: 1},
	"परसों":              {OffsetDays: 2, Days: 1},
	"this week":          {Week: true},
	"is week":            {Week: true},
	"is hafte":           {Week: true},
	"is hafta":           {Week: true},
	"इस हफ्ते":           {Week: true},
	"इस सप्ताह":          {Week: true},
	"next week":          {OffsetDays: 1, Week: true},
	"agle hafte":         {OffsetDays: 1, Week: true},
	"agle week":          {OffsetDays: 1, Week: true},
	"अगले हफ्ते":         {OffsetDays: 1, Week: true},
	"अगले सप्ताह":        {OffsetDays: 1, Week: true},
	"next 7 days":        {Days: 7},
	"agle 7 din":         {Days: 7},
}
