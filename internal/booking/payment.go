package booking

// Method identifies how a booking is paid.
type Method string

const (
	MethodCard   Method = "card"
	MethodUPI    Method = "upi"
	MethodWallet Method = "wallet"
)

// MethodOption is a payment method as presented for selection.
type MethodOption struct {
	ID    Method `json:"id"`
	Label string `json:"label"`
}

// PaymentMethods returns the accepted payment methods.
func PaymentMethods() []MethodOption {
	return []MethodOption{
		{ID: MethodCard, Label: "Credit/Debit Card"},
		{ID: MethodUPI, Label: "UPI"},
		{ID: MethodWallet, Label: "Digital Wallet"},
	}
}

// CardDetails carries the fields only card payments need.
type CardDetails struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"expiryDate"`
	CVV    string `json:"cvv"`
}

// Payment pairs a method with the data that method requires. Card is set only
// when Method is MethodCard; other methods carry no extra fields.
type Payment struct {
	Method Method       `json:"paymentMethod"`
	Card   *CardDetails `json:"card,omitempty"`
}

// Validate returns field errors keyed by field name. An empty map means the
// payment is acceptable.
func (p Payment) Validate() map[string]string {
	fields := map[string]string{}
	switch p.Method {
	case MethodCard:
		card := p.Card
		if card == nil {
			card = &CardDetails{}
		}
		if len(card.Number) < 16 {
			fields["cardNumber"] = "Please enter a valid card number"
		}
		if len(card.Expiry) < 5 {
			fields["expiryDate"] = "Please enter expiry date"
		}
		if len(card.CVV) < 3 {
			fields["cvv"] = "Please enter CVV"
		}
	case MethodUPI, MethodWallet:
	default:
		fields["paymentMethod"] = "Please select a payment method"
	}
	return fields
}
