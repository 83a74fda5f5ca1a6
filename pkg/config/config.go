package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration: where the schedule and
// music spreadsheets live, and how scripture text is fetched.
type Config struct {
	// ScheduleSpreadsheetID is the Google Sheets document holding the
	// liturgical schedule, clergy rota, and service music worksheets.
	// The sheets are publicly viewable, so they are fetched as CSV exports
	// (no API key needed).
	ScheduleSpreadsheetID string `yaml:"schedule_spreadsheet_id"`

	// ScheduleGID is the worksheet GID of the liturgical schedule tab.
	ScheduleGID int `yaml:"schedule_gid"`

	// MusicGridSpreadsheetID is the separate music-planning spreadsheet with
	// the "table of tables" panel layout.
	MusicGridSpreadsheetID string `yaml:"music_grid_spreadsheet_id"`

	// MusicGridGID is the worksheet GID of the music planning tab.
	MusicGridGID int `yaml:"music_grid_gid"`

	// ParishPrayersSpreadsheetID is the parish cycle of prayers worksheet
	// (Date/Ministry columns for one reference year).
	ParishPrayersSpreadsheetID string `yaml:"parish_prayers_spreadsheet_id"`

	// ParishPrayersGID is the worksheet GID of the parish cycle tab.
	ParishPrayersGID int `yaml:"parish_prayers_gid"`

	// ScriptureBaseURL is the scripture text provider endpoint.
	ScriptureBaseURL string `yaml:"scripture_base_url"`

	// ScriptureParams are fixed query parameters sent with every passage
	// request (translation, verse numbering, heading suppression).
	ScriptureParams map[string]string `yaml:"scripture_params"`

	// FetchDelayMS is the politeness delay between consecutive scripture
	// requests, in milliseconds.
	FetchDelayMS int `yaml:"fetch_delay_ms"`

	// SongDBPath is the SQLite song corpus location.
	SongDBPath string `yaml:"song_db_path"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ScheduleSpreadsheetID:  "",
		ScheduleGID:            0,
		MusicGridSpreadsheetID: "",
		MusicGridGID:           0,
		ScriptureBaseURL:       "https://bible.oremus.org",
		ScriptureParams: map[string]string{
			"vnum":    "yes",
			"version": "NRSVAE",
			"fnote":   "no",
			"heading": "no",
		},
		FetchDelayMS: 500,
		SongDBPath:   "songs.db",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.ScriptureBaseURL == "" {
		c.ScriptureBaseURL = "https://bible.oremus.org"
	}
	if c.ScriptureParams == nil {
		c.ScriptureParams = DefaultConfig().ScriptureParams
	}
	if c.FetchDelayMS <= 0 {
		c.FetchDelayMS = 500
	}
	if c.SongDBPath == "" {
		c.SongDBPath = "songs.db"
	}
}

// ScheduleExportURL returns the CSV export URL of the liturgical schedule tab.
func (c *Config) ScheduleExportURL() string {
	return ExportURL(c.ScheduleSpreadsheetID, c.ScheduleGID)
}

// MusicGridExportURL returns the CSV export URL of the music planning tab.
func (c *Config) MusicGridExportURL() string {
	return ExportURL(c.MusicGridSpreadsheetID, c.MusicGridGID)
}

// ParishPrayersExportURL returns the CSV export URL of the parish cycle tab.
func (c *Config) ParishPrayersExportURL() string {
	return ExportURL(c.ParishPrayersSpreadsheetID, c.ParishPrayersGID)
}

// ExportURL builds a Google Sheets CSV export URL for one worksheet.
func ExportURL(spreadsheetID string, gid int) string {
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID +
		"/export?format=csv&gid=" + strconv.Itoa(gid)
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (0600) and
// returned, so a first run leaves a template behind for the user to fill in.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename), with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".bulletiner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
