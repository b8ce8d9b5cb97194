// Package di provides dependency injection configuration for the Lendly server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/config"
	"github.com/lendlyapp/lendly-server/internal/di/providers"
	"github.com/lendlyapp/lendly-server/internal/logger"
	"github.com/lendlyapp/lendly-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideServices)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is listening.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*service.Services](injector)

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
