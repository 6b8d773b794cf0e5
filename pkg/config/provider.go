// Package config defines the dive-server's configuration schema and the
// backends ("providers") that can supply it: a YAML file, or a SQLite
// database for deployments that want to edit configuration through a
// management API instead of a text file.
package config

// Provider is a source of service configuration.
type Provider interface {
	// Load reads the complete configuration.
	Load() (*Data, error)
	// IsReadOnly reports whether this provider supports Save.
	IsReadOnly() bool
	// Save persists a new configuration. Providers that are read-only
	// (e.g. a YAML file mounted read-only into a container) return an
	// error.
	Save(*Data) error
	Close() error
}

// Data is the complete configuration for a dive-server instance.
type Data struct {
	HTTP       HTTPData       `yaml:"http" json:"http"`
	Storage    StorageData    `yaml:"storage" json:"storage"`
	SensorLink SensorLinkData `yaml:"sensor_link,omitempty" json:"sensorLink,omitempty"`
	Defaults   DefaultsData   `yaml:"defaults" json:"defaults"`
	Logging    LoggingData    `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// HTTPData configures the REST API server.
type HTTPData struct {
	ListenAddr string `yaml:"listen_addr" json:"listenAddr"`
}

// StorageData configures where session snapshots are persisted. Exactly
// one of Postgres or SQLitePath should be set.
type StorageData struct {
	PostgresDSN string `yaml:"postgres_dsn,omitempty" json:"postgresDsn,omitempty"`
	SQLitePath  string `yaml:"sqlite_path,omitempty" json:"sqlitePath,omitempty"`
}

// SensorLinkData configures an optional serial depth sensor feed that
// drives a session's model in real time.
type SensorLinkData struct {
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	Device       string `yaml:"device,omitempty" json:"device,omitempty"`
	BaudRate     int    `yaml:"baud_rate,omitempty" json:"baudRate,omitempty"`
	SessionID    string `yaml:"session_id,omitempty" json:"sessionId,omitempty"`
	DefaultGasO2 float64 `yaml:"default_gas_o2,omitempty" json:"defaultGasO2,omitempty"`
	DefaultGasHe float64 `yaml:"default_gas_he,omitempty" json:"defaultGasHe,omitempty"`
}

// DefaultsData supplies the model configuration used for sessions created
// without an explicit override.
type DefaultsData struct {
	GFLow                 uint8   `yaml:"gf_low" json:"gfLow"`
	GFHigh                uint8   `yaml:"gf_high" json:"gfHigh"`
	SurfacePressureMbar   int     `yaml:"surface_pressure_mbar" json:"surfacePressureMbar"`
	DecoAscentRateMPerMin float64 `yaml:"deco_ascent_rate_m_per_min" json:"decoAscentRateMPerMin"`
	// AdaptiveCeiling selects buhlmann.CeilingAdaptive. This is the one
	// conservatism switch the model exposes: it governs NDL() search
	// behavior, there is no separate NDL knob. Ceiling() rounding is set
	// by RoundCeiling, not by this field.
	AdaptiveCeiling        bool    `yaml:"adaptive_ceiling,omitempty" json:"adaptiveCeiling,omitempty"`
	RoundCeiling           bool    `yaml:"round_ceiling,omitempty" json:"roundCeiling,omitempty"`
	RecalcAllTissueMValues bool    `yaml:"recalc_all_tissue_m_values" json:"recalcAllTissueMValues"`
	// DecoStopWindowM is the stop-depth rounding step passed through to
	// buhlmann.Config.DecoStopWindowM. Zero means the model's own default
	// (3 m) applies.
	DecoStopWindowM float64 `yaml:"deco_stop_window_m,omitempty" json:"decoStopWindowM,omitempty"`
}

// LoggingData configures the service logger.
type LoggingData struct {
	Debug   bool   `yaml:"debug,omitempty" json:"debug,omitempty"`
	LogFile string `yaml:"log_file,omitempty" json:"logFile,omitempty"`
}
