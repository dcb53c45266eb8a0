package app

import (
	"fmt"
	"log/slog"

	"github.com/simp-lee/hrdesk/internal/config"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/internal/transport"
)

// OpenBackend connects the data backend cfg selects. Mock wins; the database
// is only opened when it actually serves records. The returned func releases
// whatever was opened and is safe to call on a mock backend.
func OpenBackend(cfg *config.Config, log *slog.Logger) (resource.Backend, func(), error) {
	backend := resource.Backend{Mock: cfg.Data.Mock}
	release := func() {}

	switch {
	case cfg.Data.Mock:
	case cfg.UsesDatabase():
		db, err := config.SetupDatabase(&cfg.Database, log)
		if err != nil {
			return backend, release, fmt.Errorf("setup database: %w", err)
		}
		backend.DB = db
		release = func() { closeDB(db, log) }
	default:
		client, err := transport.New(transport.Config{
			BaseURL:  cfg.Data.Remote.BaseURL,
			Token:    cfg.Data.Remote.Token,
			Timeout:  cfg.RemoteTimeout(),
			RetryMax: cfg.Data.Remote.RetryMax,
			Logger:   log,
		})
		if err != nil {
			return backend, release, fmt.Errorf("setup remote backend: %w", err)
		}
		backend.HTTP = client
	}
	return backend, release, nil
}
