package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/phoenixveritas/vaultasg/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# vaultasg stack configuration
# Generated by: vaultasg init
# Generated at: %s
#
# Usage:
#   vaultasg validate -c %s
#   vaultasg synth -c %s
`, time.Now().Format(time.RFC3339), outputPath, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite asks through a huh confirm prompt.
func defaultConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("File already exists: " + path).
				Description("Overwrite it?").
				Value(&overwrite),
		),
	).Run()
	return overwrite, err
}
