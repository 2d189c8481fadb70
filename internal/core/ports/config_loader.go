package ports

import "go.trai.ch/jopts/internal/core/domain"

// ConfigLoader defines the interface for loading runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd looking for a config file and returns the resolved settings.
	// Defaults are returned when no config file exists.
	Load(cwd string) (domain.Settings, error)
}
