// Package repository defines the ranking table store interface and errors.
package repository

// Option applies a configuration option to the TableStore.
type Option func(*TableStore)

// WithMetricsUpdates controls whether the store publishes dataset size
// gauges after the table is built. Enabled by default; tests disable it.
func WithMetricsUpdates(enabled bool) Option {
	return func(s *TableStore) {
		s.updateMetrics = enabled
	}
}
