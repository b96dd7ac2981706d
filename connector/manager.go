package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Konsultn-Engineering/sqlview/database"
)

var globalManager = &Manager{
	providers: make(map[string]Provider),
}

// Manager is the provider registry.
type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// Register makes provider available under name, replacing an earlier one.
func Register(name string, provider Provider) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.providers[name] = provider
}

// Drivers returns the registered driver names in order.
func Drivers() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.providers))
	for name := range globalManager.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Option func(*standardConnector)

// WithLogger sets the logger for connects, retries and statements.
// slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *standardConnector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a connector for the provider registered as name. An empty name
// falls back to config.Driver.
func New(name string, config Config, opts ...Option) (Connector, error) {
	if name == "" {
		name = config.Driver
	}
	globalManager.mu.RLock()
	provider, ok := globalManager.providers[name]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &standardConnector{
		name:     name,
		provider: provider,
		config:   config,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type standardConnector struct {
	name     string
	provider Provider
	config   Config
	logger   *slog.Logger

	mu    sync.Mutex
	conns []Connection
}

// Connect opens a connection and pings it, retrying per config.Retry. The
// returned connection logs every statement at debug level.
func (c *standardConnector) Connect(ctx context.Context) (Connection, error) {
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	var (
		conn Connection
		err  error
	)
	if c.config.Retry != nil {
		conn, err = retryConnect(ctx, *c.config.Retry, c.logger, c.connect)
	} else {
		conn, err = c.connect(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("connector: %s: %w", c.name, err)
	}

	c.logger.InfoContext(ctx, "connected",
		slog.String("driver", c.name),
		slog.String("database", c.config.Database),
	)

	logged := &loggedConnection{
		Connection: conn,
		exec:       NewExecutor(conn.Database(), c.logger, c.config.QueryTimeout),
	}
	c.mu.Lock()
	c.conns = append(c.conns, logged)
	c.mu.Unlock()
	return logged, nil
}

func (c *standardConnector) connect(ctx context.Context) (Connection, error) {
	conn, err := c.provider.Connect(ctx, c.config)
	if err != nil {
		return nil, err
	}
	if err := conn.Health(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Close closes every connection opened by the connector.
func (c *standardConnector) Close() error {
	c.mu.Lock()
	conns := c.conns
	c.conns = nil
	c.mu.Unlock()

	var errs []error
	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type loggedConnection struct {
	Connection
	exec *Executor
}

func (c *loggedConnection) Database() database.Database { return c.exec }
