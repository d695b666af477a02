package service

import "github.com/unirank/unirank/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTopUniversitiesCap bounds the top_n accepted by TopUniversities.
func WithTopUniversitiesCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topUniversitiesCap = n
		}
	}
}

// WithMaxTopN bounds the top_n accepted by the aggregate operations.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}
