package cache

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/storage"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/storage/redis/v3"
)

// DefaultPrefix namespaces every marketplace key in redis.
const DefaultPrefix = "condo:"

// PluginModule exposes a ViewCache to other modules as the "cache" plugin.
// Plugins start before and stop after regular modules.
type PluginModule struct {
	container types.ServiceContainer
	storage   storage.Storage
	views     *viewCache
	redisAddr string
	prefix    string
	ttl       time.Duration
}

var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a cache plugin for the redis server at redisAddr.
func NewPluginModule(redisAddr string, ttl time.Duration) *PluginModule {
	return &PluginModule{
		redisAddr: redisAddr,
		prefix:    DefaultPrefix,
		ttl:       ttl,
	}
}

func (m *PluginModule) Name() string {
	return "cache"
}

func (m *PluginModule) Start(_ context.Context) error {
	host, port := parseRedisAddr(m.redisAddr)
	m.storage = redis.New(redis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 20,
	})
	m.views = newViewCache(m.storage, m.prefix, m.ttl)
	log.Printf("[cache] Product views cached in Redis at %s (prefix: %s, TTL: %s)", m.redisAddr, m.prefix, m.ttl)
	return nil
}

func (m *PluginModule) Stop(_ context.Context) error {
	if m.storage != nil {
		if err := m.storage.Close(); err != nil {
			return fmt.Errorf("failed to close redis connection: %w", err)
		}
	}
	if m.views != nil {
		c := m.views.counters()
		log.Printf("[cache] Plugin stopped (hits: %d, misses: %d, fills: %d)", c.Hits, c.Misses, c.Fills)
		return nil
	}
	log.Println("[cache] Plugin stopped")
	return nil
}

func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Views returns the product view cache. It is nil until Start has run.
func (m *PluginModule) Views() ViewCache {
	if m.views == nil {
		return nil
	}
	return m.views
}

// Counters reports hit, miss and fill totals. It is zero before Start.
func (m *PluginModule) Counters() Counters {
	if m.views == nil {
		return Counters{}
	}
	return m.views.counters()
}

func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.storage == nil {
		return mono.HealthStatus{Healthy: false, Message: "storage not initialized"}
	}
	if _, err := m.storage.GetWithContext(ctx, "__health_check__"); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("health check failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.redisAddr,
			"prefix":     m.prefix,
			"ttl":        m.ttl.String(),
			"views":      m.Counters(),
		},
	}
}

// parseRedisAddr falls back to 127.0.0.1:6379 for missing or malformed parts.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
