package password

import "fmt"

// Policy defines the requirements for password complexity
type Policy struct {
	MinLength int
	MaxLength int
}

// DefaultPolicy returns the policy applied to new and updated credentials:
// between 6 and 100 characters.
func DefaultPolicy() *Policy {
	return &Policy{
		MinLength: 6,
		MaxLength: 100,
	}
}

// CheckPassword verifies that a password meets the complexity requirements
func (p *Policy) CheckPassword(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return fmt.Errorf("password must be at most %d characters long", p.MaxLength)
	}
	return nil
}
