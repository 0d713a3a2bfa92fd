// Package tracker bundles the per-session state: the food catalog, the
// daily log, and the data directory they persist into. Both the CLI and
// the MCP server open one Tracker and operate on it.
package tracker

import (
	"os"
	"path/filepath"

	"yada/internal/catalog"
	"yada/internal/config"
	"yada/internal/dailylog"
)

// Tracker is the in-memory diet tracker for one session.
type Tracker struct {
	Catalog *catalog.Catalog
	Log     *dailylog.Log

	cfg     *config.Config
	baseDir string
}

// Open creates the base directory if needed and loads the catalog and
// log from its data files. Missing files start empty. Log entries
// referencing foods absent from the catalog are skipped on load.
func Open(baseDir string, cfg *config.Config) (*Tracker, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}

	t := &Tracker{
		Catalog: catalog.New(),
		Log:     dailylog.New(),
		cfg:     cfg,
		baseDir: baseDir,
	}

	if err := t.Catalog.Load(t.basicPath(), t.compositePath()); err != nil {
		return nil, err
	}
	if err := t.Log.Load(t.logPath(), t.Catalog.Lookup); err != nil {
		return nil, err
	}
	return t, nil
}

// SaveCatalog rewrites both food files.
func (t *Tracker) SaveCatalog() error {
	return t.Catalog.Save(t.basicPath(), t.compositePath())
}

// SaveLog rewrites the daily log file.
func (t *Tracker) SaveLog() error {
	return t.Log.Save(t.logPath())
}

// Save persists everything.
func (t *Tracker) Save() error {
	if err := t.SaveCatalog(); err != nil {
		return err
	}
	return t.SaveLog()
}

// BaseDir returns the data directory.
func (t *Tracker) BaseDir() string {
	return t.baseDir
}

func (t *Tracker) basicPath() string {
	return filepath.Join(t.baseDir, t.cfg.BasicFoodsFile)
}

func (t *Tracker) compositePath() string {
	return filepath.Join(t.baseDir, t.cfg.CompositeFoodsFile)
}

func (t *Tracker) logPath() string {
	return filepath.Join(t.baseDir, t.cfg.DailyLogFile)
}
