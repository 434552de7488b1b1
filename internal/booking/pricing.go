package booking

// Option is a selectable catalog entry carrying a price component in INR.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

var sessionTypes = []Option{
	{ID: "travel", Label: "Travel Guidance", Price: 50},
	{ID: "examday", Label: "Travel & Stay guidance", Price: 80},
	{ID: "strategy", Label: "Travel + Stay + Exam Strategy", Price: 120},
}

var durations = []Option{
	{ID: "30", Label: "30 minutes", Price: 50},
	{ID: "60", Label: "1 hour", Price: 90},
	{ID: "90", Label: "1.5 hours", Price: 130},
}

// SessionTypes returns the bookable session types.
func SessionTypes() []Option {
	return append([]Option(nil), sessionTypes...)
}

// Durations returns the bookable session lengths.
func Durations() []Option {
	return append([]Option(nil), durations...)
}

// SessionTypeByID looks up a session type by its catalog ID.
func SessionTypeByID(id string) (Option, bool) {
	return optionByID(sessionTypes, id)
}

// DurationByID looks up a duration by its catalog ID.
func DurationByID(id string) (Option, bool) {
	return optionByID(durations, id)
}

func optionByID(options []Option, id string) (Option, bool) {
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// TotalPrice sums the price components of the chosen session type and
// duration. Unknown selections contribute nothing.
func TotalPrice(sessionTypeID, durationID string) int {
	total := 0
	if opt, ok := SessionTypeByID(sessionTypeID); ok {
		total += opt.Price
	}
	if opt, ok := DurationByID(durationID); ok {
		total += opt.Price
	}
	return total
}
