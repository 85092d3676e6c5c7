// Package di provides dependency injection container
package di

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ssargent/recstore/pkg/config"
	"github.com/ssargent/recstore/pkg/metrics"
	"github.com/ssargent/recstore/pkg/store"
	"go.uber.org/zap"
)

// Container holds all the dependencies for the application
type Container struct {
	config   *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	options  store.Options
}

// NewContainer wires configuration, logging and metrics into store options
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	growth, err := store.ParseGrowthPolicy(cfg.Store.Growth)
	if err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	return &Container{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  m,
		options: store.Options{
			Ceiling: cfg.Store.CeilingBytes,
			Growth:  growth,
			Logger:  logger,
			Metrics: m,
		},
	}, nil
}

// NewTextStore creates a text store using the container's options
func (c *Container) NewTextStore() *store.TextStore {
	return store.NewTextStore(c.options)
}

// NewNumericStore creates a numeric store using the container's options
func (c *Container) NewNumericStore() *store.NumericStore {
	return store.NewNumericStore(c.options)
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *zap.Logger {
	return c.logger
}

// GetRegistry returns the metrics registry
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// SetAllocator overrides the arena allocator (for testing)
func (c *Container) SetAllocator(alloc store.Allocator) {
	c.options.Allocator = alloc
}

// WriteMetrics writes gathered metrics to the configured file, if any
func (c *Container) WriteMetrics() error {
	if c.config.Metrics.File == "" {
		return nil
	}
	if err := metrics.WriteToFile(c.config.Metrics.File, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
