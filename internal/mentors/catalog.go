package mentors

// Mentor is one browsable guide profile.
type Mentor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	City         string   `json:"city"`
	Exams        []string `json:"exams"`
	Year         string   `json:"year"`
	Tags         []string `json:"tags"`
	Intro        string   `json:"intro"`
	Verified     bool     `json:"verified"`
	ResponseTime string   `json:"responseTime"`
	SupportTypes []string `json:"supportTypes"`
}

var catalog = []Mentor{
	{
		ID: "1", Name: "Anchal Patel", Image: "/Anchal.jpeg",
		Rating: 4.0, ReviewCount: 17, City: "Delhi",
		Exams: []string{"JEE Main", "JEE Advanced"}, Year: "2024",
		Tags:  []string{"Local transport expert", "Knows safe eateries"},
		Intro: "I understand exam stress! I'll help you navigate Delhi like a local and keep you calm on exam day.",
		Verified: true, ResponseTime: "2 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "2", Name: "Priyanshu Yadav", Image: "/Priyanshu.jpeg",
		Rating: 4.8, ReviewCount: 32, City: "Pune",
		Exams: []string{"JEE Mains", "JEE Advanced"}, Year: "2024",
		Tags:  []string{"Accommodation expert", "Budget-friendly tips", "Motivational"},
		Intro: "From finding the perfect stay to exam day motivation - I've got your back throughout your Pune journey!",
		Verified: true, ResponseTime: "1 hour",
		SupportTypes: []string{"Travel & Stay", "Strategy Session"},
	},
	{
		ID: "3", Name: "Rashi Ashish Shrivastava", Image: "/Rashi.jpeg",
		Rating: 5.0, ReviewCount: 28, City: "Bangalore",
		Exams: []string{"CAT", "XAT"}, Year: "2023",
		Tags:  []string{"Traffic navigation", "Tech-savvy", "Quick responder"},
		Intro: "Bangalore traffic can be tricky! I'll share the best routes and timing to reach your center stress-free.",
		Verified: true, ResponseTime: "30 mins",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support"},
	},
	{
		ID: "4", Name: "Ayush Dixit", Image: "/Ayush.jpeg",
		Rating: 4.7, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"NDA", "SSB", "JEE Mains", "JEE Advanced"}, Year: "2022",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "5", Name: "Krishna Gupta", Image: "/Krishna.jpeg",
		Rating: 4.7, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"JEE Mains", "JEE Advanced", "CUET UG"}, Year: "2024",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "6", Name: "Deepak Raj", Image: "/Deepak.jpeg",
		Rating: 4.1, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"NDA", "WBJEE", "JEE Mains", "JEE Advanced"}, Year: "2024",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "7", Name: "Abhishek Singh", Image: "/Abhishek.jpeg",
		Rating: 4.1, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"JEE Mains", "JEE Advanced"}, Year: "2024",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "8", Name: "Ankit Yadav", Image: "/Ankit.jpeg",
		Rating: 4.1, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"GATE", "CAT", "SSB"}, Year: "2022",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
	{
		ID: "9", Name: "Ananya Pandey", Image: "/Ananya.jpeg",
		Rating: 4.1, ReviewCount: 41, City: "Mumbai",
		Exams: []string{"NEET"}, Year: "2024",
		Tags:  []string{"Local trains expert", "Budget accommodation", "Study spots"},
		Intro: "Mumbai local trains can be overwhelming. I'll teach you the routes and share hidden study-friendly cafes!",
		Verified: true, ResponseTime: "3 hours",
		SupportTypes: []string{"Travel & Stay", "Exam Day Support", "Strategy Session"},
	},
}

const allCities = "All Cities"
const allExams = "All Exams"

// Cities returns the city filter options, the catch-all first.
func Cities() []string {
	return []string{allCities, "Delhi", "Mumbai", "Bangalore", "Pune", "Chennai", "Kolkata", "Hyderabad"}
}

// Exams returns the exam filter options, the catch-all first.
func Exams() []string {
	return []string{allExams, "NDA"}
}

// All returns the full mentor catalog.
func All() []Mentor {
	return append([]Mentor(nil), catalog...)
}

// ByID looks a mentor up by catalog ID.
func ByID(id string) (Mentor, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Mentor{}, false
}

// Filter narrows the catalog by city and exam. Empty values and the catch-all
// options match everything.
func Filter(city, exam string) []Mentor {
	var matched []Mentor
	for _, m := range catalog {
		if !cityMatches(m, city) || !examMatches(m, exam) {
			continue
		}
		matched = append(matched, m)
	}
	return matched
}

func cityMatches(m Mentor, city string) bool {
	return city == "" || city == allCities || m.City == city
}

func examMatches(m Mentor, exam string) bool {
	if exam == "" || exam == allExams {
		return true
	}
	for _, e := range m.Exams {
		if e == exam {
			return true
		}
	}
	return false
}
