package checkout

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate applies the contact-field rules in order; the first failing
// rule wins. Returns nil when all pass.
func Validate(name, email, phone, address string) *ValidationError {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)

	if name == "" || email == "" || phone == "" || address == "" {
		return &ValidationError{Reason: "All fields required."}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Reason: "Invalid email."}
	}
	if !validPhone(phone) {
		return &ValidationError{Reason: "Invalid phone."}
	}
	if len(address) < 5 {
		return &ValidationError{Reason: "Invalid address."}
	}
	return nil
}

func validPhone(phone string) bool {
	clean := strings.NewReplacer("+", "", " ", "", "-", "").Replace(phone)
	if len(clean) < 8 {
		return false
	}
	for _, c := range clean {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
