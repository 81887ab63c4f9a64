// Package config defines the agent configuration structure.
package config

import (
	"errors"

	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *AgentConfig) error {
	if err := verifyIntake(&cfg.Intake); err != nil {
		return err
	}
	if err := verifyRemoteConfig(&cfg.RemoteConfig); err != nil {
		return err
	}
	if err := verifyExport(&cfg.Export); err != nil {
		return err
	}
	if err := verifySampling(&cfg.Sampling); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyIntake(cfg *IntakeSection) error {
	if cfg.Enabled && cfg.Addr == "" {
		return errors.New("intake.addr is required when intake.enabled")
	}
	return nil
}

func verifyRemoteConfig(cfg *RemoteConfigSection) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Endpoint == "" {
		return errors.New("remote_config.endpoint is required when remote_config.enabled")
	}
	if cfg.PollInterval < 0 {
		return errors.New("remote_config.poll_interval must not be negative")
	}
	return nil
}

func verifyExport(cfg *ExportSection) error {
	if cfg.Endpoint == "" {
		return errors.New("export.endpoint is required")
	}
	if cfg.BatchSize < 1 {
		return errors.New("export.batch_size must be at least 1")
	}
	if cfg.QueueSize < 1 {
		return errors.New("export.queue_size must be at least 1")
	}
	return nil
}

func verifySampling(cfg *SamplingSection) error {
	if cfg.Rate < 0 || cfg.Rate > 1 {
		return errors.New("sampling.rate must be within [0, 1]")
	}
	if cfg.RateLimit < 0 {
		return errors.New("sampling.rate_limit must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if cfg.Level != "" && !logger.ValidLevel(cfg.Level) {
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	return nil
}
