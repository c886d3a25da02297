package handlers

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/config/wizard"
	"github.com/phoenixveritas/vaultasg/internal/util/ptr"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive prompts.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init writes a stack configuration, either from the interactive wizard or
// from the built-in defaults.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			log.Infof("kept existing %s", outputPath)
			return nil
		}
	}

	var cfg *config.Config
	if useDefaults {
		cfg = config.Default()
	} else {
		result, err := runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		cfg = wizard.BuildConfig(result)
	}

	if _, err := buildGraph(cfg); err != nil {
		return err
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	log.Infof("wrote %s", outputPath)
	log.Infof("  stack:     %s", cfg.StackName)
	log.Infof("  network:   %s (%d subnets)", cfg.Network.CIDR, len(cfg.Network.Subnets))
	log.Infof("  instances: %s, capacity %d/%d/%d", cfg.Compute.InstanceType,
		ptr.Deref(cfg.Compute.MinCapacity, 0), ptr.Deref(cfg.Compute.DesiredCapacity, 0), ptr.Deref(cfg.Compute.MaxCapacity, 0))
	log.Infof("next: vaultasg synth -c %s", outputPath)
}
