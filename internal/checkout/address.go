package checkout

import (
	"fmt"
	"strings"
	"unicode"
)

// Address is the shipping form collected before payment.
type Address struct {
	FullName      string `json:"fullName"`
	AddressLine1  string `json:"addressLine1"`
	City          string `json:"city"`
	Pincode       string `json:"pincode"`
	State         string `json:"state"`
	ContactNumber string `json:"contactNumber"`
}

// IncompleteFormError names the first field left blank.
type IncompleteFormError struct {
	Field string
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("Please fill out the %s field.", humanize(e.Field))
}

// Validate checks fields in form order and reports the first empty one.
func (a Address) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"pincode", a.Pincode},
		{"state", a.State},
		{"contactNumber", a.ContactNumber},
	}
	for _, f := range fields {
		if f.value == "" {
			return &IncompleteFormError{Field: f.name}
		}
	}
	return nil
}

// humanize turns "addressLine1" into "address line1".
func humanize(field string) string {
	var b strings.Builder
	for _, r := range field {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
