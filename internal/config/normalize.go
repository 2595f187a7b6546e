package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeLogging()
	if c.Output.JPEGQuality == 0 {
		c.Output.JPEGQuality = defaultJPEGQuality
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WeightsDir) == "" {
		c.Paths.WeightsDir = defaultWeightsDir
	}
	if c.Paths.WeightsDir, err = expandPath(c.Paths.WeightsDir); err != nil {
		return fmt.Errorf("paths.weights_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	if strings.TrimSpace(c.Engine.UpscaleBinary) == "" {
		c.Engine.UpscaleBinary = defaultUpscaleBinary
	}
	if strings.TrimSpace(c.Engine.FaceBinary) == "" {
		c.Engine.FaceBinary = defaultFaceBinary
	}
	if strings.TrimSpace(c.Engine.DenoiseBinary) == "" {
		c.Engine.DenoiseBinary = defaultDenoiseBinary
	}
	if c.Engine.TimeoutSeconds <= 0 {
		c.Engine.TimeoutSeconds = defaultEngineTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
