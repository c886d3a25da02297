// Package handlers implements the business logic for CLI commands.
//
// Handlers are called by the cobra commands in the commands package. External
// effects go through package-level factory variables so tests can replace them.
package handlers

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	log "github.com/sirupsen/logrus"

	"github.com/phoenixveritas/vaultasg/internal/config"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// findConfigFile locates vaultasg.yaml or vaultasg.hcl.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads and defaults a config file.
	loadConfigFile = config.Load

	// resolveRegion asks the AWS default configuration chain for a region.
	resolveRegion = func(ctx context.Context) (string, error) {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to load AWS config: %w", err)
		}
		return cfg.Region, nil
	}
)

// EnvironmentOverrides replaces the config file's environment section.
type EnvironmentOverrides struct {
	Account      string
	Region       string
	UseAWSRegion bool
}

// loadConfig loads the config at path. With an empty path it searches for a
// config file and falls back to the built-in defaults when none exists.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := findConfigFile()
		if errors.Is(err, config.ErrConfigNotFound) {
			log.Debug("no config file found, using built-in defaults")
			return config.Default(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	log.Debugf("loading config from %s", path)
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvironment merges flag overrides into cfg. The AWS region chain is
// only consulted when requested and no region is set otherwise.
func applyEnvironment(ctx context.Context, cfg *config.Config, env EnvironmentOverrides) error {
	if env.Account != "" {
		cfg.Environment.Account = env.Account
	}
	if env.Region != "" {
		cfg.Environment.Region = env.Region
	}
	if env.UseAWSRegion && cfg.Environment.Region == "" {
		region, err := resolveRegion(ctx)
		if err != nil {
			return err
		}
		if region == "" {
			return errors.New("no region found in the AWS configuration chain, set AWS_REGION or use --region")
		}
		log.Debugf("using region %s from the AWS configuration chain", region)
		cfg.Environment.Region = region
	}
	return nil
}
