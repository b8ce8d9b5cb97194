package providers

import (
	"github.com/samber/do/v2"

	"github.com/lendlyapp/lendly-server/internal/auth"
	"github.com/lendlyapp/lendly-server/internal/logger"
	"github.com/lendlyapp/lendly-server/internal/service"
)

// ProvideServices provides the full business service set.
func ProvideServices(i do.Injector) (*service.Services, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.New(storeHandle.Store, tokenService, log.Logger), nil
}
