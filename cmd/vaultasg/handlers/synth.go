package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/metrics"
	"github.com/phoenixveritas/vaultasg/internal/stack"
	"github.com/phoenixveritas/vaultasg/internal/ui"
)

// Output formats accepted by synth --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Factory function variables for synth - can be replaced in tests.
var (
	// writeAssembly writes the template and manifest to disk.
	writeAssembly = descriptor.WriteAssembly

	// stdout receives templates printed with --stdout and summaries.
	stdout io.Writer = os.Stdout

	// isInteractive reports whether summaries should be rendered.
	isInteractive = func() bool { return ui.IsInteractiveTTY(os.Stdout) }

	// now returns the current time.
	now = time.Now
)

// SynthOptions holds the synth command flags.
type SynthOptions struct {
	ConfigPath  string
	OutDir      string
	Format      string
	Stdout      bool
	MetricsFile string
	Env         EnvironmentOverrides
}

// Synth builds the stack declared by the config and writes its cloud
// assembly, or prints the template when Stdout is set.
func Synth(ctx context.Context, opts SynthOptions) error {
	if opts.Format != FormatJSON && opts.Format != FormatYAML {
		return fmt.Errorf("unsupported format %q, use %s or %s", opts.Format, FormatJSON, FormatYAML)
	}

	start := now()
	d, err := synthesize(ctx, opts.ConfigPath, opts.Env)
	if err != nil {
		return err
	}
	took := now().Sub(start)

	if opts.Stdout {
		if err := printTemplate(d, opts.Format); err != nil {
			return err
		}
	} else {
		files, err := writeAssembly(opts.OutDir, d)
		if err != nil {
			return err
		}
		log.WithField("stack", d.StackName).Debugf("template hash %s", d.TemplateHash)
		if isInteractive() {
			fmt.Fprint(stdout, ui.RenderSynthSummary(d, files))
		} else {
			log.Infof("wrote %s with %d resources to %s", d.StackName, d.ResourceTotal(), opts.OutDir)
		}
	}

	if opts.MetricsFile != "" {
		rec := metrics.NewSynthRecorder()
		rec.Record(d, took, now())
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			return err
		}
		log.Debugf("wrote metrics to %s", opts.MetricsFile)
	}

	return nil
}

// synthesize runs the load, build and emit pipeline.
func synthesize(ctx context.Context, configPath string, env EnvironmentOverrides) (*descriptor.Descriptor, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyEnvironment(ctx, cfg, env); err != nil {
		return nil, err
	}

	g, err := buildGraph(cfg)
	if err != nil {
		return nil, err
	}

	d, err := descriptor.Emit(g)
	if err != nil {
		return nil, fmt.Errorf("failed to emit stack %s: %w", cfg.StackName, err)
	}
	return d, nil
}

func buildGraph(cfg *config.Config) (*stack.Graph, error) {
	g, err := stack.Build(cfg.ToParams())
	if err != nil {
		return nil, fmt.Errorf("invalid stack %s: %w", cfg.StackName, err)
	}
	return g, nil
}

func printTemplate(d *descriptor.Descriptor, format string) error {
	data := d.Template
	if format == FormatYAML {
		var err error
		data, err = d.TemplateYAML()
		if err != nil {
			return err
		}
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
