package staff

import (
	"errors"
	"fmt"
	"regexp"
)

// Staff represents a staff member. The PIN is stored only as a hash and is
// never serialised.
type Staff struct {
	ID         string  `json:"staff_id"`
	PINHash    string  `json:"-"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	HourlyWage float64 `json:"hourly_wage"`
	IsAdmin    bool    `json:"is_admin"`
}

// Credential is the result of a credential lookup: the matched staff
// identity and whether it carries the admin flag.
type Credential struct {
	StaffID string `json:"staff_id"`
	IsAdmin bool   `json:"is_admin"`
}

// pinPattern is the required PIN format: exactly four digits.
var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// maxNameLength bounds first and last names.
const maxNameLength = 50

// ValidatePIN checks that a plaintext PIN is exactly four digits.
func ValidatePIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return errors.New("pin must be exactly 4 digits")
	}
	return nil
}

// Validate checks the mutable fields of a staff record.
func (s *Staff) Validate() error {
	if s.FirstName == "" || len(s.FirstName) > maxNameLength {
		return fmt.Errorf("first_name must be 1-%d characters", maxNameLength)
	}
	if s.LastName == "" || len(s.LastName) > maxNameLength {
		return fmt.Errorf("last_name must be 1-%d characters", maxNameLength)
	}
	if s.HourlyWage < 0 {
		return errors.New("hourly_wage must not be negative")
	}
	return nil
}

// Sentinel errors for staff operations.
var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrIDExists      = errors.New("staff identifier already exists")
	ErrPINExists     = errors.New("pin already in use")
)
