package signup

import (
	"net/mail"

	"github.com/gabriel-vasile/mimetype"
)

// AdmitCard is the optional proof-of-registration attachment.
type AdmitCard struct {
	Filename string
	Data     []byte
}

// Draft holds everything the student entered. The accommodation and travel
// fields are only meaningful when NeedsTravelInfo holds for the selected
// support types.
type Draft struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	ExamType          string     `json:"examType"`
	ExamCity          string     `json:"examCity"`
	ExamDate          string     `json:"examDate"`
	ExamCenterAddress string     `json:"examCenterAddress"`
	SupportType       []string   `json:"supportType"`
	HotelPriceRange   string     `json:"hotelPriceRange"`
	TravelMode        []string   `json:"travelMode"`
	TravelPreference  []string   `json:"travelPreference"`
	AdditionalInfo    string     `json:"additionalInfo"`
	AdmitCard         *AdmitCard `json:"-"`
}

// Validate returns field errors keyed by field name; empty means the draft is
// submittable. Fields behind a hidden section are not validated.
func Validate(d Draft, maxAdmitCardBytes int64) map[string]string {
	fields := map[string]string{}
	if len(d.Name) < 2 {
		fields["name"] = "Name must be at least 2 characters"
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		fields["email"] = "Please enter a valid email address"
	}
	if len(d.Phone) < 10 {
		fields["phone"] = "Please enter a valid phone number"
	}
	if d.ExamType == "" {
		fields["examType"] = "Please select your exam type"
	} else if et, ok := examTypeByName(d.ExamType); !ok || !et.Enabled {
		fields["examType"] = "This exam type is not available yet"
	}
	if d.ExamCity == "" {
		fields["examCity"] = "Please enter your exam city"
	}
	if d.ExamDate == "" {
		fields["examDate"] = "Please select your exam date"
	}
	if d.ExamCenterAddress == "" {
		fields["examCenterAddress"] = "Please enter your exam center address"
	}
	if len(d.SupportType) == 0 {
		fields["supportType"] = "Please select at least one support type"
	} else {
		for _, st := range d.SupportType {
			if _, ok := supportTypeByID(st); !ok {
				fields["supportType"] = "Please select a valid support type"
				break
			}
		}
	}
	if msg := validateAdmitCard(d.AdmitCard, maxAdmitCardBytes); msg != "" {
		fields["admitCard"] = msg
	}
	return fields
}

// validateAdmitCard accepts absence; present files must fit the size bound
// and sniff as PDF, PNG, or JPEG regardless of their declared name.
func validateAdmitCard(card *AdmitCard, maxBytes int64) string {
	if card == nil {
		return ""
	}
	if int64(len(card.Data)) > maxBytes {
		return "Admit card is too large"
	}
	detected := mimetype.Detect(card.Data)
	for _, allowed := range []string{"application/pdf", "image/png", "image/jpeg"} {
		if detected.Is(allowed) {
			return ""
		}
	}
	return "Admit card must be a PDF, PNG, or JPEG"
}
