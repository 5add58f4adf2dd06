package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout as the process default. Called
// before config loading so early failures are already structured; main later
// swaps in a MultiHandler once the database is up.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
