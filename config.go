package seismod

import (
	"fmt"

	"github.com/spf13/viper"
)

// TriggerSettings mirrors the YAML `event_recorder.trigger_config` block.
type TriggerSettings struct {
	DeltaWindow           int     `mapstructure:"delta_window"`
	FilterCutoffFrequency float64 `mapstructure:"filter_cutoff_frequency"`
	XTriggerLevel         int32   `mapstructure:"x_trigger_level"`
	YTriggerLevel         int32   `mapstructure:"y_trigger_level"`
	ZTriggerLevel         int32   `mapstructure:"z_trigger_level"`
	DebugFilename         string  `mapstructure:"debug_filename"`
	SampleRateHz          float64 `mapstructure:"sample_rate_hz"`
}

// EventRecorderSettings mirrors the YAML `event_recorder` block.
type EventRecorderSettings struct {
	TriggerConfig    TriggerSettings `mapstructure:"trigger_config"`
	PreTriggerTimeMs uint32          `mapstructure:"pre_trigger_time_ms"`
	PostTriggerTimeMs uint32         `mapstructure:"post_trigger_time_ms"`
	Filename         string          `mapstructure:"filename"`
}

// RawDataRecorderSettings mirrors the YAML `raw_data_recorder` block.
type RawDataRecorderSettings struct {
	Filename string `mapstructure:"filename"`
	Enabled  bool   `mapstructure:"enabled"`
}

// StatisticsSettings mirrors the YAML `statistics` block: how often (in
// milliseconds, at the trigger config's sample_rate_hz) each axis reduces
// and logs a report.
type StatisticsSettings struct {
	ReportIntervalMs int  `mapstructure:"report_interval_ms"`
	Enabled          bool `mapstructure:"enabled"`
}

// RMSSettings mirrors the YAML `rms` block: the optional rolling-RMS
// recorder's output file and window size (in samples).
type RMSSettings struct {
	Filename   string `mapstructure:"filename"`
	WindowSize int    `mapstructure:"window_size"`
	Enabled    bool   `mapstructure:"enabled"`
}

// Config is the top-level, Viper-decoded configuration document. Collected
// into one struct rather than several independent UnmarshalKey calls, since
// this domain has a single source instead of several interchangeable ones.
type Config struct {
	Port             string                  `mapstructure:"port"`
	RPCPort          int                     `mapstructure:"rpc_port"`
	Statistics       StatisticsSettings      `mapstructure:"statistics"`
	EventRecorder    EventRecorderSettings   `mapstructure:"event_recorder"`
	RawDataRecorder  RawDataRecorderSettings `mapstructure:"raw_data_recorder"`
	RMS              RMSSettings             `mapstructure:"rms"`
	TelemetryPort    int                     `mapstructure:"telemetry_port"`
	TelemetryEnabled bool                    `mapstructure:"telemetry_enabled"`
}

// LoadConfig finds and parses a config file named configName (without
// extension) in the current directory or /etc/seismod. Viper auto-detects
// YAML/TOML/JSON from the file extension it finds.
func LoadConfig(configName string) (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath("/etc/seismod")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %q: %w", configName, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config %q: %w", configName, err)
	}
	return &cfg, nil
}
