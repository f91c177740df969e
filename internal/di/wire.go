//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/dominik-hvln/zozoapp-sub000/internal/app"
	"github.com/dominik-hvln/zozoapp-sub000/internal/database"
)

func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		RuntimeInfraSet,
		RepositorySet,
		SecuritySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}

func InitializeMigrationRunner() (*MigrationRunner, error) {
	panic(wire.Build(
		ConfigSet,
		database.Open,
		NewMigrationRunner,
	))
}
