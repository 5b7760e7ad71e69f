package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/passhash"
	"github.com/go-playground/validator/v10"
)

const (
	MaxIdentityBytes = 254
	MinPasswordBytes = 8
)

type credentialInput struct {
	Identity string `validate:"required,identity"`
	Password string `validate:"required,password"`
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// byte lengths, not rune counts: the hashing primitive bounds bytes
	err := v.RegisterValidation("identity", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) <= MaxIdentityBytes && utf8.ValidString(s) &&
			strings.TrimSpace(s) == s && !strings.ContainsRune(s, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("register identity rule: %w", err)
	}
	err = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) >= MinPasswordBytes && len(s) <= passhash.MaxPasswordBytes && !strings.ContainsRune(s, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("register password rule: %w", err)
	}

	return v, nil
}

// validateInput reports every failing field wrapped in common.ErrorValidation.
func validateInput(v *validator.Validate, identity, password string) error {
	err := v.Struct(credentialInput{Identity: identity, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(fields, ", "))
}
