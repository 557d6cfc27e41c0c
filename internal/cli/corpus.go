package cli

import (
	"github.com/roach88/treeconf/internal/config"
	"github.com/roach88/treeconf/internal/harness"
	"github.com/roach88/treeconf/internal/store"
)

// loadTrials resolves the corpora (positional args replace the configured
// list), loads their trials and applies the filter.
func loadTrials(f *OutputFormatter, cfg *config.Config, args []string, filter string) ([]harness.Trial, error) {
	corpora := cfg.Corpora
	if len(args) > 0 {
		corpora = args
	}

	trials, err := harness.LoadTrials(corpora)
	if err != nil {
		return nil, f.CommandError(ErrCodeCorpus, "failed to load trials", err)
	}

	trials, err = harness.FilterTrials(trials, filter)
	if err != nil {
		return nil, f.CommandError(ErrCodeFilter, "failed to filter trials", err)
	}
	return trials, nil
}

// openStore opens the run history named by --db, falling back to the
// configured database.
func openStore(f *OutputFormatter, cfg *config.Config, dbPath string) (*store.Store, error) {
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath == "" {
		return nil, f.CommandError(ErrCodeDatabase, "no database: pass --db or set database in the config", nil)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, f.CommandError(ErrCodeDatabase, "failed to open database", err)
	}
	return s, nil
}

func configError(f *OutputFormatter, err error) error {
	return f.CommandError(ErrCodeConfig, "failed to load config", err)
}
