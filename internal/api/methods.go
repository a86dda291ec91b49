package api

// Method is an Al Adhan calculation method.
type Method struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Methods lists the calculation methods the API accepts. ID 6 is unassigned.
var Methods = []Method{
	{ID: 0, Name: "Shia Ithna-Ashari (Jafari)"},
	{ID: 1, Name: "University of Islamic Sciences, Karachi"},
	{ID: 2, Name: "Islamic Society of North America (ISNA)"},
	{ID: 3, Name: "Muslim World League (MWL)"},
	{ID: 4, Name: "Umm Al-Qura University, Makkah"},
	{ID: 5, Name: "Egyptian General Authority of Survey"},
	{ID: 7, Name: "Institute of Geophysics, University of Tehran"},
	{ID: 8, Name: "Gulf Region"},
	{ID: 9, Name: "Kuwait"},
	{ID: 10, Name: "Qatar"},
	{ID: 11, Name: "Majlis Ugama Islam Singapura (Singapore)"},
	{ID: 12, Name: "Union Organization Islamic de France"},
	{ID: 13, Name: "Diyanet Isleri Baskanligi, Turkey (experimental)"},
	{ID: 14, Name: "Spiritual Administration of Muslims of Russia"},
	{ID: 15, Name: "Moonsighting Committee Worldwide"},
	{ID: 16, Name: "Dubai (experimental)"},
	{ID: 17, Name: "JAKIM (Malaysia)"},
	{ID: 18, Name: "Tunisia"},
	{ID: 19, Name: "Algeria"},
	{ID: 20, Name: "KEMENAG (Indonesia)"},
	{ID: 21, Name: "Morocco"},
	{ID: 22, Name: "Comunidade Islamica de Lisboa (Portugal)"},
	{ID: 23, Name: "Ministry of Awqaf, Jordan"},
}

// MethodName returns the name of method id.
func MethodName(id int) (string, bool) {
	for _, m := range Methods {
		if m.ID == id {
			return m.Name, true
		}
	}
	return "", false
}
