package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConvert()
	c.normalizeServer()
	c.normalizeCuesheet()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("NARRATOR_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConvert() {
	c.Convert.OutputSuffix = strings.TrimSpace(c.Convert.OutputSuffix)
	if c.Convert.OutputSuffix == "" {
		c.Convert.OutputSuffix = defaultOutputSuffix
	}
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	if value, ok := os.LookupEnv("NARRATOR_API_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.Server.Token = value
	}
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	if c.Server.MaxUploadMiB == 0 {
		c.Server.MaxUploadMiB = defaultMaxUploadMiB
	}
}

func (c *Config) normalizeCuesheet() {
	c.Cuesheet.FontFamily = strings.TrimSpace(c.Cuesheet.FontFamily)
	if c.Cuesheet.FontFamily == "" {
		c.Cuesheet.FontFamily = defaultFontFamily
	}
	if c.Cuesheet.FontSize == 0 {
		c.Cuesheet.FontSize = defaultFontSize
	}
	c.Cuesheet.HighlightColor = strings.ToUpper(strings.TrimSpace(c.Cuesheet.HighlightColor))
	if c.Cuesheet.HighlightColor == "" {
		c.Cuesheet.HighlightColor = defaultHighlightColor
	}
	if !strings.HasPrefix(c.Cuesheet.HighlightColor, "#") {
		c.Cuesheet.HighlightColor = "#" + c.Cuesheet.HighlightColor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
