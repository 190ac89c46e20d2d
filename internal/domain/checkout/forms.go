package checkout

import "regexp"

// emailPattern mirrors the storefront's check: something@domain.tld,
// no whitespace. Deliberately loose, full RFC validation is not the goal.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ShippingInfo holds the delivery details entered at the Shipping step
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"` // optional
}

// Validate returns a field-keyed map of error messages, empty when valid.
// All fields except phone are required; email must look like an address.
func (s ShippingInfo) Validate() map[string]string {
	errs := make(map[string]string)
	if s.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	if s.Address == "" {
		errs["address"] = "Address is required"
	}
	if s.City == "" {
		errs["city"] = "City is required"
	}
	if s.State == "" {
		errs["state"] = "State is required"
	}
	if s.ZipCode == "" {
		errs["zipCode"] = "ZIP code is required"
	}
	if s.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(s.Email) {
		errs["email"] = "Email is invalid"
	}
	return errs
}

// PaymentInfo holds the card details entered at the Payment step.
// It lives only in the ephemeral checkout session; the full card number is
// never written to an order record or a log.
type PaymentInfo struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// Validate returns a field-keyed map of error messages, empty when valid.
// Checks are presence-only; no Luhn or format validation is performed.
func (p PaymentInfo) Validate() map[string]string {
	errs := make(map[string]string)
	if p.CardNumber == "" {
		errs["cardNumber"] = "Card number is required"
	}
	if p.CardHolder == "" {
		errs["cardHolder"] = "Card holder name is required"
	}
	if p.ExpiryDate == "" {
		errs["expiryDate"] = "Expiry date is required"
	}
	if p.CVV == "" {
		errs["cvv"] = "CVV is required"
	}
	return errs
}

// Last4 returns the trailing four characters of the card number
func (p PaymentInfo) Last4() string {
	if len(p.CardNumber) <= 4 {
		return p.CardNumber
	}
	return p.CardNumber[len(p.CardNumber)-4:]
}
