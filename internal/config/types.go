package config

import "time"

// Config holds all application configuration for the cot tool.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Session  SessionConfig  `yaml:"session" json:"session"`
	Helpers  HelpersConfig  `yaml:"helpers" json:"helpers"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Platform PlatformConfig `yaml:"platform" json:"platform"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"`
	FilePath string `yaml:"filePath" json:"filePath"`
}

// SessionConfig holds per-invocation scratch/session settings.
type SessionConfig struct {
	ScratchDir       string        `yaml:"scratchDir" json:"scratchDir"`
	CleanupOnExit    bool          `yaml:"cleanupOnExit" json:"cleanupOnExit"`
	SpaceCheckMargin float64       `yaml:"spaceCheckMargin" json:"spaceCheckMargin"`
	OperationTimeout time.Duration `yaml:"operationTimeout" json:"operationTimeout"`
}

// HelpersConfig holds the names/paths of external helper programs the
// core requests by capability. The core never searches PATH itself
// beyond what pkg/utils/exec already does; this config lets a caller
// override discovery.
type HelpersConfig struct {
	QemuImg  string `yaml:"qemuImg" json:"qemuImg"`
	Mkisofs  string `yaml:"mkisofs" json:"mkisofs"`
	Fatdisk  string `yaml:"fatdisk" json:"fatdisk"`
	Vmdktool string `yaml:"vmdktool" json:"vmdktool"`
	Isoinfo  string `yaml:"isoinfo" json:"isoinfo"`
	Ovftool  string `yaml:"ovftool" json:"ovftool"`
}

// OutputConfig holds default output behavior.
type OutputConfig struct {
	DefaultForm string `yaml:"defaultForm" json:"defaultForm"` // "directory" or "ova"
	Force       bool   `yaml:"force" json:"force"`
}

// PlatformConfig holds platform-registry tuning (bound overrides etc.)
// Most platform defaults live in code (internal/platform); this lets an
// operator loosen or tighten bounds without a rebuild.
type PlatformConfig struct {
	StrictBounds bool `yaml:"strictBounds" json:"strictBounds"`
}

// Default returns a Config populated with sane defaults, mirroring the
// zero-config behavior a CLI invocation should have.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Session: SessionConfig{
			CleanupOnExit:    true,
			SpaceCheckMargin: 0.05,
			OperationTimeout: 0,
		},
		Helpers: HelpersConfig{
			QemuImg:  "qemu-img",
			Mkisofs:  "mkisofs",
			Fatdisk:  "fatdisk",
			Vmdktool: "vmdktool",
			Isoinfo:  "isoinfo",
			Ovftool:  "ovftool",
		},
		Output: OutputConfig{
			DefaultForm: "ova",
		},
		Platform: PlatformConfig{
			StrictBounds: false,
		},
	}
}
