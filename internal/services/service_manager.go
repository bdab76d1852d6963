package services

import (
	"log/slog"
	"sync"

	"github.com/portal-provas/exam-service/internal/cache"
	"github.com/portal-provas/exam-service/internal/events"
	"github.com/portal-provas/exam-service/internal/store"
	"github.com/portal-provas/exam-service/internal/validator"
)

// ServiceManager wires the catalog and attempt managers over one shared
// store. Both mutate the snapshot via load-modify-save, so they share a
// single mutex; that serializes writers within this process. Cross-process
// coordination is deliberately out of scope.
type ServiceManager struct {
	catalog CatalogService
	attempt AttemptService
}

type ServiceManagerConfig struct {
	Store     store.Store
	Logger    *slog.Logger
	Validator *validator.Validator
	Publisher events.Publisher
	Directory UserDirectory
	Cache     *cache.CacheHelper
}

func NewServiceManager(cfg ServiceManagerConfig) *ServiceManager {
	mu := &sync.Mutex{}
	if cfg.Directory == nil {
		cfg.Directory = NewStaticUserDirectory(store.SeedUsers())
	}
	return &ServiceManager{
		catalog: NewCatalogService(cfg.Store, cfg.Logger, cfg.Validator, cfg.Cache, mu),
		attempt: NewAttemptService(cfg.Store, cfg.Logger, cfg.Publisher, cfg.Directory, mu),
	}
}

func (m *ServiceManager) Catalog() CatalogService { return m.catalog }
func (m *ServiceManager) Attempt() AttemptService { return m.attempt }
