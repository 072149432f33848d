package config

const (
	defaultConfigPath      = "~/.config/phirapack/config.toml"
	defaultOutputDir       = "."
	defaultHistoryDB       = "~/.local/share/phirapack/history.db"
	defaultLogFormat       = "auto"
	defaultLogLevel        = "info"
	defaultStaleAfterHours = 24
	defaultHistoryEnabled  = true

	// OutputDirEnv overrides paths.output_dir when set.
	OutputDirEnv = "PHIRAPACK_OUTPUT_DIR"
)

// Default returns a Config populated with repository defaults. An empty
// staging directory resolves to the system temp directory during Load.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			HistoryDB: defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Staging: Staging{
			StaleAfterHours: defaultStaleAfterHours,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Atlas: Atlas{
			HoldFallback:   [2]int{50, 50},
			HoldMHFallback: [2]int{50, 95},
		},
	}
}
