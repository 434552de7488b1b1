package signup

// ExamType is a selectable exam. Only enabled entries are accepted on
// submission; the rest are listed but greyed out until mentors cover them.
type ExamType struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// ExamTypes returns the exam catalog.
func ExamTypes() []ExamType {
	return []ExamType{
		{Name: "JEE Main", Enabled: true},
		{Name: "JEE Advanced"},
		{Name: "NEET"},
		{Name: "CAT"},
		{Name: "GATE"},
		{Name: "UPSC"},
		{Name: "SSC"},
		{Name: "Bank PO"},
		{Name: "Other"},
	}
}

func examTypeByName(name string) (ExamType, bool) {
	for _, et := range ExamTypes() {
		if et.Name == name {
			return et, true
		}
	}
	return ExamType{}, false
}

// Choice is a catalog entry with a short description shown under its label.
type Choice struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SupportTypes returns the kinds of help a student can request.
func SupportTypes() []Choice {
	return []Choice{
		{ID: "travel", Label: "Travel Guidance", Description: "Help with routes, local tips"},
		{ID: "examday", Label: "Travel & Stay guidance", Description: "Help with routes, accomodation and local tips in one place!"},
		{ID: "strategy", Label: "Travel+ Stay+ Exam-Strategy", Description: "Mindset, confidence building, study tipsroutes, accomodation and local tips everything at your fingertips!"},
	}
}

func supportTypeByID(id string) (Choice, bool) {
	for _, st := range SupportTypes() {
		if st.ID == id {
			return st, true
		}
	}
	return Choice{}, false
}

// HotelPriceRanges returns the accommodation budget options.
func HotelPriceRanges() []Choice {
	return []Choice{
		{ID: "budget", Label: "Budget (₹500-₹1,500/night)", Description: "Basic accommodation with essential amenities"},
		{ID: "mid-range", Label: "Mid-Range (₹1,500-₹3,500/night)", Description: "Comfortable stay with good amenities"},
		{ID: "premium", Label: "Premium (₹3,500-₹7,000/night)", Description: "Luxury accommodation with premium services"},
		{ID: "luxury", Label: "Luxury (₹7,000+/night)", Description: "High-end hotels with exceptional services"},
	}
}

// TravelModes returns how students plan to reach the exam city.
func TravelModes() []Choice {
	return []Choice{
		{ID: "bus", Label: "Bus", Description: "Economical travel option"},
		{ID: "train", Label: "Train", Description: "Comfortable and reliable"},
		{ID: "airways", Label: "Airways", Description: "Fastest travel option"},
	}
}

// TravelPreferences returns how students want to travel on exam day.
func TravelPreferences() []Choice {
	return []Choice{
		{ID: "shared-transport", Label: "Shared Transportation", Description: "Share taxi, cab, or private vehicle to exam center"},
		{ID: "public-transport", Label: "Public Transport", Description: "Travel together via bus, train, or metro"},
		{ID: "early-departure", Label: "Early Departure", Description: "Prefer to leave early to avoid rush and reach on time"},
		{ID: "safety-companion", Label: "Safety Companion", Description: "Travel together for safety, especially for early morning exams"},
		{ID: "cost-sharing", Label: "Cost Sharing", Description: "Share travel expenses like taxi fare or fuel costs"},
	}
}

// NeedsTravelInfo reports whether the accommodation and travel sections apply
// to the selected support types.
func NeedsTravelInfo(supportTypes []string) bool {
	for _, st := range supportTypes {
		if st == "examday" || st == "strategy" {
			return true
		}
	}
	return false
}
