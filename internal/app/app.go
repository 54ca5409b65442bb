// Package app wires the application: it owns dependency construction order
// so main() only has to provide the externals (config, database handles,
// logger).
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"cvsite/internal/analytics"
	"cvsite/internal/config"
	"cvsite/internal/content"
	"cvsite/internal/telemetry"
	"cvsite/internal/ui"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App is the fully-wired application.
type App struct {
	Profile   *content.Profile
	Repo      *analytics.VisitRepo
	Analytics *analytics.Handler
	UI        *ui.Handler
	Retention *analytics.RetentionJob
}

// New builds the application from deps. The profile is loaded eagerly so a
// broken YAML file fails startup instead of the first request.
func New(deps Deps) (*App, error) {
	profile, err := content.Load(deps.Cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	repo := analytics.NewVisitRepo(deps.WriteDB, deps.ReadDB)
	tc := telemetry.New(deps.Cfg.TrackEndpoint, deps.Logger)

	return &App{
		Profile:   profile,
		Repo:      repo,
		Analytics: analytics.NewHandler(repo, deps.Logger),
		UI:        ui.NewHandler(profile, repo, tc, deps.Logger),
		Retention: analytics.NewRetentionJob(repo, deps.Cfg.VisitRetention, deps.Logger),
	}, nil
}
