package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/config"
)

// saveAndRestoreFactories resets every factory variable after the test and
// silences the standard logger.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origFindConfigFile := findConfigFile
	origLoadConfigFile := loadConfigFile
	origResolveRegion := resolveRegion
	origWriteAssembly := writeAssembly
	origStdout := stdout
	origIsInteractive := isInteractive
	origNow := now
	origReadAssembly := readAssembly
	origNewUploader := newUploader
	origPublishDescriptor := publishDescriptor
	origFileExists := fileExists
	origConfirmOverwrite := confirmOverwrite
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	origOut := log.StandardLogger().Out

	isInteractive = func() bool { return false }
	log.SetOutput(io.Discard)

	t.Cleanup(func() {
		findConfigFile = origFindConfigFile
		loadConfigFile = origLoadConfigFile
		resolveRegion = origResolveRegion
		writeAssembly = origWriteAssembly
		stdout = origStdout
		isInteractive = origIsInteractive
		now = origNow
		readAssembly = origReadAssembly
		newUploader = origNewUploader
		publishDescriptor = origPublishDescriptor
		fileExists = origFileExists
		confirmOverwrite = origConfirmOverwrite
		runWizard = origRunWizard
		writeConfig = origWriteConfig
		log.SetOutput(origOut)
	})
}

// captureLog records standard logger output for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	return &buf
}

func noConfigFile() (string, error) {
	return "", fmt.Errorf("%w: looked for vaultasg.yaml", config.ErrConfigNotFound)
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaultasg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func fixedClock() func() time.Time {
	ts := time.Unix(1700000000, 0)
	return func() time.Time { return ts }
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = noConfigFile
	loadConfigFile = func(string) (*config.Config, error) {
		t.Fatal("loadConfigFile must not be called")
		return nil, nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_UsesFoundFile(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "/work/vaultasg.yaml", nil }

	var loaded string
	loadConfigFile = func(path string) (*config.Config, error) {
		loaded = path
		cfg := config.Default()
		cfg.StackName = "Found"
		return cfg, nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/work/vaultasg.yaml", loaded)
	assert.Equal(t, "Found", cfg.StackName)
}

func TestLoadConfig_SearchError(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) { return "", errors.New("failed to get current directory") }

	_, err := loadConfig("")
	assert.EqualError(t, err, "failed to get current directory")
}

func TestLoadConfig_LoadError(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfigFile = func(string) (*config.Config, error) { return nil, errors.New("bad yaml") }

	_, err := loadConfig("stack.yaml")
	assert.EqualError(t, err, "failed to load config stack.yaml: bad yaml")
}

func TestApplyEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		fileRegion  string
		env         EnvironmentOverrides
		awsRegion   string
		awsErr      error
		wantAccount string
		wantRegion  string
		wantErr     string
		wantLookup  bool
	}{
		{name: "no overrides"},
		{
			name:        "flags win over file",
			fileRegion:  "eu-west-1",
			env:         EnvironmentOverrides{Account: "123456789012", Region: "us-east-2"},
			wantAccount: "123456789012",
			wantRegion:  "us-east-2",
		},
		{
			name:       "aws chain fills missing region",
			env:        EnvironmentOverrides{UseAWSRegion: true},
			awsRegion:  "ap-south-1",
			wantRegion: "ap-south-1",
			wantLookup: true,
		},
		{
			name:       "aws chain not consulted when region set",
			fileRegion: "eu-west-1",
			env:        EnvironmentOverrides{UseAWSRegion: true},
			wantRegion: "eu-west-1",
		},
		{
			name:       "aws chain without region",
			env:        EnvironmentOverrides{UseAWSRegion: true},
			wantErr:    "no region found",
			wantLookup: true,
		},
		{
			name:       "aws chain error",
			env:        EnvironmentOverrides{UseAWSRegion: true},
			awsErr:     errors.New("failed to load AWS config: broken profile"),
			wantErr:    "broken profile",
			wantLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveAndRestoreFactories(t)
			looked := false
			resolveRegion = func(context.Context) (string, error) {
				looked = true
				return tt.awsRegion, tt.awsErr
			}

			cfg := config.Default()
			cfg.Environment.Region = tt.fileRegion

			err := applyEnvironment(context.Background(), cfg, tt.env)
			assert.Equal(t, tt.wantLookup, looked)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccount, cfg.Environment.Account)
			assert.Equal(t, tt.wantRegion, cfg.Environment.Region)
		})
	}
}
