package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() Address {
	return Address{
		FullName:      "Asha Verma",
		AddressLine1:  "12 MG Road",
		City:          "Pune",
		Pincode:       "411001",
		State:         "Maharashtra",
		ContactNumber: "9876543210",
	}
}

func TestAddress_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Address)
		field   string
		message string
	}{
		{"full name", func(a *Address) { a.FullName = "" }, "fullName", "Please fill out the full name field."},
		{"address line", func(a *Address) { a.AddressLine1 = "" }, "addressLine1", "Please fill out the address line1 field."},
		{"city", func(a *Address) { a.City = "" }, "city", "Please fill out the city field."},
		{"pincode", func(a *Address) { a.Pincode = "" }, "pincode", "Please fill out the pincode field."},
		{"state", func(a *Address) { a.State = "" }, "state", "Please fill out the state field."},
		{"contact number", func(a *Address) { a.ContactNumber = "" }, "contactNumber", "Please fill out the contact number field."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAddress()
			tt.mutate(&a)

			err := a.Validate()

			var formErr *IncompleteFormError
			require.True(t, errors.As(err, &formErr))
			assert.Equal(t, tt.field, formErr.Field)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestAddress_ValidateReportsFirstMissingField(t *testing.T) {
	a := validAddress()
	a.City = ""
	a.ContactNumber = ""

	assert.EqualError(t, a.Validate(), "Please fill out the city field.")

	assert.EqualError(t, Address{}.Validate(), "Please fill out the full name field.")
}

func TestAddress_ValidateComplete(t *testing.T) {
	assert.NoError(t, validAddress().Validate())
}
