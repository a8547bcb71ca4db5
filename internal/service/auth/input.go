package auth

import "github.com/storylab/backend/internal/domain"

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ExternalLoginInput holds the identity asserted by an external provider.
type ExternalLoginInput struct {
	Email     string
	Name      string
	AvatarURL string
}

// Validate validates the external login input.
func (i ExternalLoginInput) Validate() error {
	if i.Email == "" {
		return domain.NewValidationError("email", "required")
	}
	return nil
}
