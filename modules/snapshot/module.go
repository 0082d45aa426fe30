package snapshot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/condo-marketplace/modules/marketplace"
	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module bulk-loads the marketplace from a sqlite snapshot when it starts.
type Module struct {
	db          *gorm.DB
	repo        *Repository
	marketplace marketplace.MarketplacePort
	dbPath      string
	seed        bool
	debug       bool
	last        LoadResult
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the loader for the database at dbPath.
func NewModule(dbPath string, seed, debug bool) *Module {
	return &Module{dbPath: dbPath, seed: seed, debug: debug}
}

func (m *Module) Name() string {
	return "snapshot"
}

func (m *Module) Dependencies() []string {
	return []string{"marketplace"}
}

func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "marketplace" {
		m.marketplace = marketplace.NewAdapter(container)
	}
}

func (m *Module) Start(ctx context.Context) error {
	if m.marketplace == nil {
		return fmt.Errorf("marketplace dependency not set")
	}

	db, err := openDB(m.dbPath, m.debug)
	if err != nil {
		return err
	}
	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return err
	}

	result, err := NewLoader(m.repo, m.seed).Load(ctx, m.marketplace)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	m.last = result

	log.Printf("[snapshot] Loaded %d products and %d residents from %s", result.Products, result.Residents, m.dbPath)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		log.Println("[snapshot] Module stopped")
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot database: %w", err)
	}

	log.Println("[snapshot] Database connection closed")
	return nil
}

// openDB opens the snapshot database. Every connection to an in-memory sqlite
// database gets its own empty database, so those are pinned to one connection.
func openDB(dbPath string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if isMemoryDSN(dbPath) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func isMemoryDSN(dbPath string) bool {
	return strings.Contains(dbPath, ":memory:") || strings.Contains(dbPath, "mode=memory")
}

func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":    "sqlite",
			"path":      m.dbPath,
			"seeded":    m.last.Seeded,
			"products":  m.last.Products,
			"residents": m.last.Residents,
		},
	}
}
