package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/xtree/internal/app"
	"github.com/chmouel/xtree/internal/buildinfo"
	"github.com/chmouel/xtree/internal/config"
	"github.com/chmouel/xtree/internal/models"
)

func writeTreeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: app\nchildren:\n  - name: lib.go\n"), 0o600))
	return path
}

// captureModel replaces the TUI runner and returns the model it was given.
func captureModel(t *testing.T) **app.Model {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var captured *app.Model
	orig := runProgram
	runProgram = func(m tea.Model) error {
		captured, _ = m.(*app.Model)
		return nil
	}
	t.Cleanup(func() { runProgram = orig })
	return &captured
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"xtree"}, args...))
	return out.String(), err
}

func TestGlobalFlags(t *testing.T) {
	names := map[string]bool{}
	for _, flag := range globalFlags() {
		for _, name := range flag.Names() {
			names[name] = true
		}
	}
	for _, expected := range []string{"config-file", "debug-log", "theme", "t", "sort", "no-compress", "transition", "watch", "config", "C", "list-themes"} {
		assert.True(t, names[expected], expected)
	}
}

func TestVersionCommand(t *testing.T) {
	buildinfo.Set("v1.2.3", "abc", "today", "test")
	t.Cleanup(func() { buildinfo.Set("dev", "none", "unknown", "unknown") })

	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "xtree version v1.2.3")
	assert.Contains(t, out, "commit: abc")
}

func TestListThemes(t *testing.T) {
	out, err := runCommand(t, "--list-themes")

	require.NoError(t, err)
	assert.Contains(t, out, "Available themes:")
	assert.Contains(t, out, "gruvbox-dark")
}

func TestRunRequiresTreeFile(t *testing.T) {
	captureModel(t)

	_, err := runCommand(t)
	assert.Error(t, err)

	_, err = runCommand(t, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "cannot open tree file")
}

func TestRunAppliesFlags(t *testing.T) {
	captured := captureModel(t)
	path := writeTreeFile(t)

	_, err := runCommand(t, "--sort", "height", "--no-compress", "--theme", "nord", "--transition", "timer", path)

	require.NoError(t, err)
	require.NotNil(t, *captured)
	state := (*captured).State()
	assert.Equal(t, models.SortHeight, state.Sorting())
	assert.False(t, state.IsCompressed)
}

func TestLoadCLIConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeTreeFile(t)

	var cfg *config.AppConfig
	cmd := NewCommand()
	cmd.Action = func(_ context.Context, c *urfavecli.Command) error {
		var err error
		cfg, err = loadCLIConfig(c)
		return err
	}
	err := cmd.Run(context.Background(), []string{"xtree", "--sort", "children", "--watch", "--no-compress", "-C", "xt.theme=gruvbox-dark", "-C", "transition=event", path})

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, models.SortChildren, cfg.Sort)
	assert.True(t, cfg.AutoReload)
	assert.False(t, cfg.Compressed)
	assert.Equal(t, "gruvbox-dark", cfg.Theme)
	assert.Equal(t, config.TransitionEvent, cfg.Transition)
}

func TestLoadCLIConfigRejectsInvalidValues(t *testing.T) {
	captureModel(t)
	path := writeTreeFile(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "theme", args: []string{"--theme", "solarized"}},
		{name: "sort", args: []string{"--sort", "size"}},
		{name: "transition", args: []string{"--transition", "spring"}},
		{name: "override", args: []string{"-C", "xt.colour=red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, append(tt.args, path)...)
			assert.Error(t, err)
		})
	}
}

func TestConfigFileIsRead(t *testing.T) {
	captured := captureModel(t)
	path := writeTreeFile(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sort: Height\ntheme: nord\n"), 0o600))

	_, err := runCommand(t, "--config-file", configPath, path)

	require.NoError(t, err)
	require.NotNil(t, *captured)
	assert.Equal(t, models.SortHeight, (*captured).State().Sorting())
}

func TestConfigDebugLogReceivesStartupMessages(t *testing.T) {
	captureModel(t)
	path := writeTreeFile(t)
	logPath := filepath.Join(t.TempDir(), "debug.log")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("theme: nord\ndebug_log: "+logPath+"\n"), 0o600))

	_, err := runCommand(t, "--config-file", configPath, path)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "starting xtree")
	assert.Contains(t, content, "on "+path)
	assert.Contains(t, content, "theme nord")
	assert.Less(t, strings.Index(content, "starting xtree"), strings.Index(content, "theme nord"))
}
