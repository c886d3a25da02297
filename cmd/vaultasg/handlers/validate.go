package handlers

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Validate checks that the config builds into a valid stack without
// writing anything.
func Validate(ctx context.Context, configPath string, env EnvironmentOverrides) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := applyEnvironment(ctx, cfg, env); err != nil {
		return err
	}

	g, err := buildGraph(cfg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"subnets": len(g.Subnets),
		"nodes":   len(g.Nodes()),
	}).Debug("stack graph built")
	log.Infof("stack %s is valid", cfg.StackName)
	return nil
}
