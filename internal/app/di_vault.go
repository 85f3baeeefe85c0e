package app

import (
	"fmt"

	"github.com/allisson/cachevault/internal/config"
	"github.com/allisson/cachevault/internal/http"
	vaultHTTP "github.com/allisson/cachevault/internal/vault/http"
	vaultRepository "github.com/allisson/cachevault/internal/vault/repository"
	vaultUseCase "github.com/allisson/cachevault/internal/vault/usecase"
)

// EntryRepository returns the entry repository for the configured database driver.
func (c *Container) EntryRepository() (vaultUseCase.EntryRepository, error) {
	c.entryRepositoryInit.Do(func() {
		repo, err := c.initEntryRepository()
		if err != nil {
			c.setInitError("entryRepository", err)
			return
		}
		c.entryRepository = repo
	})
	if err := c.initError("entryRepository"); err != nil {
		return nil, err
	}
	return c.entryRepository, nil
}

// AttributeRepository returns the attribute repository for the configured database driver.
func (c *Container) AttributeRepository() (vaultUseCase.AttributeRepository, error) {
	c.attributeRepositoryInit.Do(func() {
		repo, err := c.initAttributeRepository()
		if err != nil {
			c.setInitError("attributeRepository", err)
			return
		}
		c.attributeRepository = repo
	})
	if err := c.initError("attributeRepository"); err != nil {
		return nil, err
	}
	return c.attributeRepository, nil
}

// EntryUseCase returns the entry use case.
func (c *Container) EntryUseCase() (vaultUseCase.EntryUseCase, error) {
	c.entryUseCaseInit.Do(func() {
		useCase, err := c.initEntryUseCase()
		if err != nil {
			c.setInitError("entryUseCase", err)
			return
		}
		c.entryUseCase = useCase
	})
	if err := c.initError("entryUseCase"); err != nil {
		return nil, err
	}
	return c.entryUseCase, nil
}

// AttributeUseCase returns the attribute use case.
func (c *Container) AttributeUseCase() (vaultUseCase.AttributeUseCase, error) {
	c.attributeUseCaseInit.Do(func() {
		useCase, err := c.initAttributeUseCase()
		if err != nil {
			c.setInitError("attributeUseCase", err)
			return
		}
		c.attributeUseCase = useCase
	})
	if err := c.initError("attributeUseCase"); err != nil {
		return nil, err
	}
	return c.attributeUseCase, nil
}

// VaultUseCase returns the vault facade, instrumented when metrics are enabled.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	c.vaultUseCaseInit.Do(func() {
		useCase, err := c.initVaultUseCase()
		if err != nil {
			c.setInitError("vaultUseCase", err)
			return
		}
		c.vaultUseCase = useCase
	})
	if err := c.initError("vaultUseCase"); err != nil {
		return nil, err
	}
	return c.vaultUseCase, nil
}

// EntryHandler returns the HTTP handler for entry routes.
func (c *Container) EntryHandler() (*vaultHTTP.EntryHandler, error) {
	c.entryHandlerInit.Do(func() {
		useCase, err := c.VaultUseCase()
		if err != nil {
			c.setInitError("entryHandler", fmt.Errorf("failed to get vault use case for entry handler: %w", err))
			return
		}
		c.entryHandler = vaultHTTP.NewEntryHandler(useCase, c.Logger())
	})
	if err := c.initError("entryHandler"); err != nil {
		return nil, err
	}
	return c.entryHandler, nil
}

// HTTPServer returns the entry API server. Its router is configured by the caller.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("httpServer", fmt.Errorf("failed to get database for http server: %w", err))
			return
		}
		c.httpServer = http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	})
	if err := c.initError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("metricsServer", fmt.Errorf("failed to get metrics provider for metrics server: %w", err))
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err := c.initError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

func (c *Container) initEntryRepository() (vaultUseCase.EntryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for entry repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverSQLite:
		return vaultRepository.NewSQLiteEntryRepository(db), nil
	case config.DriverPostgres:
		return vaultRepository.NewPostgreSQLEntryRepository(db), nil
	case config.DriverMySQL:
		return vaultRepository.NewMySQLEntryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAttributeRepository() (vaultUseCase.AttributeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for attribute repository: %w", err)
	}

	switch c.config.DBDriver {
	case config.DriverSQLite:
		return vaultRepository.NewSQLiteAttributeRepository(db), nil
	case config.DriverPostgres:
		return vaultRepository.NewPostgreSQLAttributeRepository(db), nil
	case config.DriverMySQL:
		return vaultRepository.NewMySQLAttributeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initEntryUseCase() (vaultUseCase.EntryUseCase, error) {
	repo, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for entry use case: %w", err)
	}
	codec, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get codec for entry use case: %w", err)
	}
	return vaultUseCase.NewEntryUseCase(repo, codec), nil
}

func (c *Container) initAttributeUseCase() (vaultUseCase.AttributeUseCase, error) {
	repo, err := c.AttributeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute repository for attribute use case: %w", err)
	}
	codec, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get codec for attribute use case: %w", err)
	}
	digester, err := c.Digester()
	if err != nil {
		return nil, fmt.Errorf("failed to get digester for attribute use case: %w", err)
	}
	return vaultUseCase.NewAttributeUseCase(repo, codec, digester), nil
}

func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}
	entries, err := c.EntryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry use case for vault use case: %w", err)
	}
	attributes, err := c.AttributeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute use case for vault use case: %w", err)
	}
	entryRepo, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for vault use case: %w", err)
	}
	attributeRepo, err := c.AttributeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute repository for vault use case: %w", err)
	}

	useCase := vaultUseCase.NewVaultUseCase(txManager, entries, attributes, entryRepo, attributeRepo)

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}
	return vaultUseCase.NewVaultUseCaseWithMetrics(useCase, businessMetrics), nil
}
