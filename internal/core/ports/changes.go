package ports

import "go.trai.ch/jopts/internal/core/domain"

// ChangeSource notifies interested parties when a project's build configuration changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=changes.go -destination=mocks/mock_changes.go -package=mocks
type ChangeSource interface {
	// Register arranges for fn to be called whenever the project's build configuration is touched.
	// The returned cancel function stops further notifications and is safe to call more than once.
	Register(project domain.Project, fn func()) (cancel func())
}
