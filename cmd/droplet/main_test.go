package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"droplet/internal/breath"
	"droplet/internal/config"
	"droplet/internal/logging"
	"droplet/internal/reflection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearKeys(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DROPLET_MODEL", "")
	t.Setenv("DROPLET_LOG_LEVEL", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		apiKey, model, forceInit = "", "", false
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func tempConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestStatesCommand(t *testing.T) {
	clearKeys(t)
	out, err := execute(t, "states", "--config", tempConfig(t))
	require.NoError(t, err)

	for _, s := range breath.States() {
		c := breath.ConfigFor(s)
		assert.Contains(t, out, s.String())
		assert.Contains(t, out, c.Label)
		assert.Contains(t, out, c.Color)
	}
}

func TestReflectWithoutKeyPrintsFallback(t *testing.T) {
	clearKeys(t)
	out, err := execute(t, "reflect", "calm", "--config", tempConfig(t))
	require.NoError(t, err)
	assert.Equal(t, reflection.FallbackPhrase+"\n", out)
}

func TestReflectRejectsUnknownState(t *testing.T) {
	clearKeys(t)
	_, err := execute(t, "reflect", "serene", "--config", tempConfig(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, breath.ErrUnknownState)
}

func TestGuideCommand(t *testing.T) {
	clearKeys(t)
	out, err := execute(t, "guide", "--config", tempConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Breathing Droplet")
	assert.Contains(t, out, "GEMINI_API_KEY")
}

func TestInitWritesDefaults(t *testing.T) {
	clearKeys(t)
	path := tempConfig(t)

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote "))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Reflection.Model, loaded.Reflection.Model)

	_, err = execute(t, "init", "--config", path)
	require.Error(t, err, "second init without --force must refuse")

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestInvalidConfigIsReported(t *testing.T) {
	clearKeys(t)
	path := tempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte("reflection:\n  temperature: 9\n"), 0o600))

	_, err := execute(t, "states", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSettingsFromPrefersModelFlag(t *testing.T) {
	c := config.DefaultConfig()
	c.Reflection.Model = "from-file"

	model = ""
	assert.Equal(t, "from-file", settingsFrom(c).Model)

	model = "from-flag"
	t.Cleanup(func() { model = "" })
	assert.Equal(t, "from-flag", settingsFrom(c).Model)
}

func TestCLILogLevel(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		verbose    bool
		want       string
	}{
		{"empty floors to warn", "", false, "warn"},
		{"info floors to warn", "info", false, "warn"},
		{"debug floors to warn", "debug", false, "warn"},
		{"warn kept", "warn", false, "warn"},
		{"error kept", "error", false, "error"},
		{"unknown floors to warn", "loud", false, "warn"},
		{"verbose wins", "error", true, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cliLogLevel(tt.configured, tt.verbose))
		})
	}
}

func TestSubcommandLoggerHonoursEnvLevel(t *testing.T) {
	clearKeys(t)
	t.Setenv("DROPLET_LOG_LEVEL", "error")

	_, err := execute(t, "states", "--config", tempConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cliLogs)

	api := cliLogs.For(logging.CategoryAPI)
	assert.False(t, api.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, api.Core().Enabled(zapcore.ErrorLevel))
}
