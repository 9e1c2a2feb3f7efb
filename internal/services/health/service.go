package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	env     string
	version string
}

// NewService constructs a new health service.
func NewService(env, version string) *Service {
	return &Service{env: env, version: version}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.env,
		"version":     s.version,
	}
}
