package config

const (
	defaultConfigPath     = "~/.config/narrator/config.toml"
	defaultStateDir       = "~/.local/share/narrator"
	defaultLogDir         = "~/.local/share/narrator/logs"
	defaultOutputSuffix   = "_manuscript"
	defaultServerBind     = "127.0.0.1:7488"
	defaultMaxUploadMiB   = 10
	defaultFontFamily     = "Hiragino Maru Gothic Pro"
	defaultFontSize       = 10.5
	defaultHighlightColor = "#808080"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Convert: Convert{
			OutputSuffix:  defaultOutputSuffix,
			RecordHistory: true,
		},
		Server: Server{
			Bind:         defaultServerBind,
			MaxUploadMiB: defaultMaxUploadMiB,
		},
		Cuesheet: Cuesheet{
			FontFamily:     defaultFontFamily,
			FontSize:       defaultFontSize,
			HighlightColor: defaultHighlightColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
