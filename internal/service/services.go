package service

import (
	"log/slog"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/store"
	"github.com/lendlyapp/lendly-server/internal/validation"
)

// Services bundles all application services for handler wiring.
type Services struct {
	Auth    *AuthService
	Users   *UserService
	Catalog *CatalogService
	Loans   *LoanService
}

// New constructs the full service set over one store.
func New(store *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *Services {
	validator := validation.New()

	return &Services{
		Auth:    NewAuthService(store, tokenService, validator, logger),
		Users:   NewUserService(store, validator, logger),
		Catalog: NewCatalogService(store, validator, logger),
		Loans:   NewLoanService(store, validator, logger),
	}
}
