package types

import "strings"

// CustomerInfo is the customer snapshot persisted into a checkout session
// when the customer step passes validation.
type CustomerInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	SaveInfo   bool   `json:"save_info"`
}

// MissingFields returns the names of required fields that are empty after
// trimming. An empty result means the customer step may advance.
func (c CustomerInfo) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"city", c.City},
		{"postal_code", c.PostalCode},
		{"country", c.Country},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
