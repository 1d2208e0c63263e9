package domain

import (
	"strings"
	"time"
)

// SiteContact is the person responsible for on-site availability
type SiteContact struct {
	ID              string
	CompanyRef      string
	Name            string
	Phone           string
	Email           *string
	AvailableOnsite bool
	CreatedAt       time.Time
}

// IsValid requires non-blank name and phone; email is optional
func (c SiteContact) IsValid() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Phone) != ""
}

// IsSaved returns true once the contact has been assigned an id
func (c SiteContact) IsSaved() bool {
	return c.ID != ""
}
