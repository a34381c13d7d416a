package directory

import (
	"regexp"
	"strings"
)

// emailPattern matches local-part@domain.tld where the final label is 2-6
// alphabetic characters. The presentation layer applies the same pattern; it
// is re-checked here because the service never trusts caller-side validation.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,6}$`)

// FieldError describes a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a list of field-level failures. All fields are checked
// before the list is returned, so callers can re-display every problem at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidEmail reports whether the address matches the required pattern
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (s *DirectoryService) validateCreate(params CreateUserParams) ValidationErrors {
	var errs ValidationErrors

	if params.FirstName == "" {
		errs = append(errs, FieldError{Field: "first_name", Message: "first name is required"})
	}
	if params.LastName == "" {
		errs = append(errs, FieldError{Field: "last_name", Message: "last name is required"})
	}
	if params.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !ValidEmail(params.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	if params.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if err := s.policy.CheckPassword(params.Password); err != nil {
		errs = append(errs, FieldError{Field: "password", Message: err.Error()})
	}

	return errs
}

// validateUpdate requires email and password on every update. A caller
// changing only the name must resupply both; the check is all-or-nothing and
// both failures are collected before returning.
func (s *DirectoryService) validateUpdate(params UpdateUserParams) ValidationErrors {
	var errs ValidationErrors

	if params.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email cannot be empty"})
	} else if !ValidEmail(params.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	if params.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password cannot be empty"})
	} else if err := s.policy.CheckPassword(params.Password); err != nil {
		errs = append(errs, FieldError{Field: "password", Message: err.Error()})
	}

	return errs
}
