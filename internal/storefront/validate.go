package storefront

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// validationError flattens validator output into field -> failed rule details.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		details[ns] = fe.Tag()
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
}

// ValidateProduct checks a draft without saving it.
func (s *Store) ValidateProduct(p models.Product) error {
	return s.validateProduct(p)
}

// validateProduct runs the struct rules plus the checks validator cannot
// express on decimal prices.
func (s *Store) validateProduct(p models.Product) error {
	if err := s.validate.Struct(p); err != nil {
		return validationError(err)
	}
	if !p.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"type": "oneof"})
	}
	for i, w := range p.Weights {
		if w.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{fmt.Sprintf("weights[%d].price", i): "gte"})
		}
	}
	return nil
}
