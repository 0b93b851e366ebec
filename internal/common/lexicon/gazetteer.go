package lexicon

var gazetteer = []Place{
	// Uttar Pradesh
	{Name: "Lucknow", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 26.8467, Lon: 80.9462,
		Aliases: []string{"lko", "lakhnau", "lakhnow", "lucknow city", "लखनऊ", "लखनउ"}},
	{Name: "Kanpur", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 26.4499, Lon: 80.3319,
		Aliases: []string{"cawnpore", "kanpur nagar", "कानपुर"}},
	{Name: "Varanasi", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 25.3176, Lon: 82.9739,
		Aliases: []string{"banaras", "benares", "kashi", "वाराणसी", "बनारस"}},
	{Name: "Prayagraj", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 25.4358, Lon: 81.8463,
		Aliases: []string{"allahabad", "prayag", "प्रयागराज", "इलाहाबाद"}},
	{Name: "Agra", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 27.1767, Lon: 78.0081,
		Aliases: []string{"आगरा"}},
	{Name: "Meerut", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 28.9845, Lon: 77.7064,
		Aliases: []string{"merut", "मेरठ"}},
	{Name: "Gorakhpur", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 26.7606, Lon: 83.3732,
		Aliases: []string{"गोरखपुर"}},
	{Name: "Bareilly", State: "Uttar Pradesh", Kind: PlaceCity, Lat: 28.3670, Lon: 79.4304,
		Aliases: []string{"bareli", "बरेली"}},

	// Delhi
	{Name: "New Delhi", State: "Delhi", Kind: PlaceCity, Lat: 28.6139, Lon: 77.2090,
		Aliases: []string{"nai dilli", "नई दिल्ली"}},
	{Name: "Delhi", State: "Delhi", Kind: PlaceCity, Lat: 28.7041, Lon: 77.1025,
		Aliases: []string{"dilli", "dehli", "दिल्ली"}},

	// North and west
	{Name: "Jaipur", State: "Rajasthan", Kind: PlaceCity, Lat: 26.9124, Lon: 75.7873,
		Aliases: []string{"pink city", "जयपुर"}},
	{Name: "Jodhpur", State: "Rajasthan", Kind: PlaceCity, Lat: 26.2389, Lon: 73.0243,
		Aliases: []string{"जोधपुर"}},
	{Name: "Ludhiana", State: "Punjab", Kind: PlaceCity, Lat: 30.9010, Lon: 75.8573,
		Aliases: []string{"लुधियाना"}},
	{Name: "Amritsar", State: "Punjab", Kind: PlaceCity, Lat: 31.6340, Lon: 74.8723,
		Aliases: []string{"अमृतसर"}},
	{Name: "Chandigarh", State: "Punjab", Kind: PlaceCity, Lat: 30.7333, Lon: 76.7794,
		Aliases: []string{"चंडीगढ़"}},
	{Name: "Karnal", State: "Haryana", Kind: PlaceCity, Lat: 29.6857, Lon: 76.9905,
		Aliases: []string{"करनाल"}},
	{Name: "Hisar", State: "Haryana", Kind: PlaceCity, Lat: 29.1492, Lon: 75.7217,
		Aliases: []string{"hissar", "हिसार"}},
	{Name: "Dehradun", State: "Uttarakhand", Kind: PlaceCity, Lat: 30.3165, Lon: 78.0322,
		Aliases: []string{"dehra dun", "देहरादून"}},
	{Name: "Shimla", State: "Himachal Pradesh", Kind: PlaceCity, Lat: 31.1048, Lon: 77.1734,
		Aliases: []string{"simla", "शिमला"}},

	// Central
	{Name: "Bhopal", State: "Madhya Pradesh", Kind: PlaceCity, Lat: 23.2599, Lon: 77.4126,
		Aliases: []string{"भोपाल"}},
	{Name: "Indore", State: "Madhya Pradesh", Kind: PlaceCity, Lat: 22.7196, Lon: 75.8577,
		Aliases: []string{"इंदौर"}},
	{Name: "Raipur", State: "Chhattisgarh", Kind: PlaceCity, Lat: 21.2514, Lon: 81.6296,
		Aliases: []string{"रायपुर"}},

	// East
	{Name: "Patna", State: "Bihar", Kind: PlaceCity, Lat: 25.5941, Lon: 85.1376,
		Aliases: []string{"पटना"}},
	{Name: "Ranchi", State: "Jharkhand", Kind: PlaceCity, Lat: 23.3441, Lon: 85.3096,
		Aliases: []string{"रांची"}},
	{Name: "Kolkata", State: "West Bengal", Kind: PlaceCity, Lat: 22.5726, Lon: 88.3639,
		Aliases: []string{"calcutta", "कोलकाता"}},
	{Name: "Bhubaneswar", State: "Odisha", Kind: PlaceCity, Lat: 20.2961, Lon: 85.8245,
		Aliases: []string{"bhubaneshwar", "भुवनेश्वर"}},
	{Name: "Guwahati", State: "Assam", Kind: PlaceCity, Lat: 26.1445, Lon: 91.7362,
		Aliases: []string{"gauhati", "गुवाहाटी"}},

	// West and south
	{Name: "Mumbai", State: "Maharashtra", Kind: PlaceCity, Lat: 19.0760, Lon: 72.8777,
		Aliases: []string{"bombay", "मुंबई"}},
	{Name: "Pune", State: "Maharashtra", Kind: PlaceCity, Lat: 18.5204, Lon: 73.8567,
		Aliases: []string{"poona", "पुणे"}},
	{Name: "Nashik", State: "Maharashtra", Kind: PlaceCity, Lat: 19.9975, Lon: 73.7898,
		Aliases: []string{"nasik", "नासिक"}},
	{Name: "Nagpur", State: "Maharashtra", Kind: PlaceCity, Lat: 21.1458, Lon: 79.0882,
		Aliases: []string{"नागपुर"}},
	{Name: "Ahmedabad", State: "Gujarat", Kind: PlaceCity, Lat: 23.0225, Lon: 72.5714,
		Aliases: []string{"amdavad", "अहमदाबाद"}},
	{Name: "Rajkot", State: "Gujarat", Kind: PlaceCity, Lat: 22.3039, Lon: 70.8022,
		Aliases: []string{"राजकोट"}},
	{Name: "Hyderabad", State: "Telangana", Kind: PlaceCity, Lat: 17.3850, Lon: 78.4867,
		Aliases: []string{"हैदराबाद"}},
	{Name: "Bengaluru", State: "Karnataka", Kind: PlaceCity, Lat: 12.9716, Lon: 77.5946,
		Aliases: []string{"bangalore", "बेंगलुरु"}},
	{Name: "Chennai", State: "Tamil Nadu", Kind: PlaceCity, Lat: 13.0827, Lon: 80.2707,
		Aliases: []string{"madras", "चेन्नई"}},
	{Name: "Kochi", State: "Kerala", Kind: PlaceCity, Lat: 9.9312, Lon: 76.2673,
		Aliases: []string{"cochin", "कोच्चि"}},

	// States
	{Name: "Uttar Pradesh", State: "Uttar Pradesh", Kind: PlaceState, Lat: 26.8467, Lon: 80.9462,
		Aliases: []string{"uttarpradesh", "उत्तर प्रदेश"}},
	{Name: "Bihar", State: "Bihar", Kind: PlaceState, Lat: 25.0961, Lon: 85.3131,
		Aliases: []string{"बिहार"}},
	{Name: "Punjab", State: "Punjab", Kind: PlaceState, Lat: 31.1471, Lon: 75.3412,
		Aliases: []string{"पंजाब"}},
	{Name: "Haryana", State: "Haryana", Kind: PlaceState, Lat: 29.0588, Lon: 76.0856,
		Aliases: []string{"हरियाणा"}},
	{Name: "Rajasthan", State: "Rajasthan", Kind: PlaceState, Lat: 27.0238, Lon: 74.2179,
		Aliases: []string{"राजस्थान"}},
	{Name: "Madhya Pradesh", State: "Madhya Pradesh", Kind: PlaceState, Lat: 22.9734, Lon: 78.6569,
		Aliases: []string{"मध्य प्रदेश"}},
	{Name: "Maharashtra", State: "Maharashtra", Kind: PlaceState, Lat: 19.7515, Lon: 75.7139,
		Aliases: []string{"महाराष्ट्र"}},
	{Name: "Gujarat", State: "Gujarat", Kind: PlaceState, Lat: 22.2587, Lon: 71.1924,
		Aliases: []string{"गुजरात"}},
	{Name: "West Bengal", State: "West Bengal", Kind: PlaceState, Lat: 22.9868, Lon: 87.8550,
		Aliases: []string{"bengal", "पश्चिम बंगाल"}},
	{Name: "Karnataka", State: "Karnataka", Kind: PlaceState, Lat: 15.3173, Lon: 75.7139,
		Aliases: []string{"कर्नाटक"}},
	{Name: "Tamil Nadu", State: "Tamil Nadu", Kind: PlaceState, Lat: 11.1271, Lon: 78.6569,
		Aliases: []string{"तमिलनाडु"}},
	{Name: "Telangana", State: "Telangana", Kind: PlaceState, Lat: 18.1124, Lon: 79.0193,
		Aliases: []string{"तेलंगाना"}},
	{Name: "Odisha", State: "Odisha", Kind: PlaceState, Lat: 20.9517, Lon: 85.0985,
		Aliases: []string{"orissa", "ओडिशा"}},
	{Name: "Assam", State: "Assam", Kind: PlaceState, Lat: 26.2006, Lon: 92.9376,
		Aliases: []string{"असम"}},
	{Name: "Jharkhand", State: "Jharkhand", Kind: PlaceState, Lat: 23.6102, Lon: 85.2799,
		Aliases: []string{"झारखंड"}},
	{Name: "Chhattisgarh", State: "Chhattisgarh", Kind: PlaceState, Lat: 21.2787, Lon: 81.8661,
		Aliases: []string{"छत्तीसगढ़"}},
	{Name: "Uttarakhand", State: "Uttarakhand", Kind: PlaceState, Lat: 30.0668, Lon: 79.0193,
		Aliases: []string{"उत्तराखंड"}},
	{Name: "Himachal Pradesh", State: "Himachal Pradesh", Kind: PlaceState, Lat: 31.1048, Lon: 77.1734,
		Aliases: []string{"himachal", "हिमाचल प्रदेश"}},
	{Name: "Kerala", State: "Kerala", Kind: PlaceState, Lat: 10.8505, Lon: 76.2711,
		Aliases: []string{"केरल"}},
}
