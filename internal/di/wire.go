//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/lfpcrew/lfp-admin/internal/app"
)

// InitializeApp builds the API server with every dependency it serves.
func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		InfraSet,
		RepositorySet,
		SecuritySet,
		AccessSet,
		ContentSet,
		HTTPSet,
		AppSet,
	))
}

// InitializeMigrationRunner opens the database without migrating it; the
// runner does that and reports the outcome.
func InitializeMigrationRunner() (*MigrationRunner, error) {
	panic(wire.Build(
		ConfigSet,
		provideOpenDB,
		NewMigrationRunner,
	))
}
