package order

import (
	"fulfillment/internal/pkg/errs"
)

// Address is the optional shipping destination of an order, including a contact
// email distinct from the customer's account email.
type Address struct {
	street       string
	city         string
	postalCode   string
	country      string
	contactEmail string
}

// NewAddress creates a shipping address. Street is the only required component.
func NewAddress(street, city, postalCode, country, contactEmail string) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}

	return Address{
		street:       street,
		city:         city,
		postalCode:   postalCode,
		country:      country,
		contactEmail: contactEmail,
	}, nil
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country of the address.
func (a Address) Country() string {
	return a.country
}

// ContactEmail returns the delivery contact email, which may differ from the
// customer's account email.
func (a Address) ContactEmail() string {
	return a.contactEmail
}
