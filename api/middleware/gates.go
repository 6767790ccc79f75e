package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront-vault/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-vault/pkg/errors"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
)

// GateStatus is the subset of the access gates the guards consult.
type GateStatus interface {
	AgeVerified() bool
	CustomerLocked() bool
	StaffActive() bool
}

func RequireAgeVerified(gates GateStatus, logg *logger.Logger) func(http.Handler) http.Handler {
	return guard(logg, func() error {
		if gates.AgeVerified() {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeGateLocked, "age verification required").
			WithDetails(map[string]string{"gate": "age"})
	})
}

func RequireCustomerUnlocked(gates GateStatus, logg *logger.Logger) func(http.Handler) http.Handler {
	return guard(logg, func() error {
		if !gates.CustomerLocked() {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeGateLocked, "customer pin required").
			WithDetails(map[string]string{"gate": "customer_pin"})
	})
}

func RequireStaff(gates GateStatus, logg *logger.Logger) func(http.Handler) http.Handler {
	return guard(logg, func() error {
		if gates.StaffActive() {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, "staff mode required")
	})
}

func guard(logg *logger.Logger, check func() error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
