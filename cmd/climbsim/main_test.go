package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/traverse/settings"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunScenarios(t *testing.T) {
	for _, name := range scenarioNames() {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "run", "--scenario", name, "--ticks", "300")
			require.NoError(t, err)
			require.Contains(t, out, "done after 300 ticks")
		})
	}
}

func TestWallScenarioClimbsOver(t *testing.T) {
	out, err := execute(t, "run", "--scenario", "wall", "--ticks", "400")
	require.NoError(t, err)
	require.Contains(t, out, "idle -> hanging(braced)")
	require.Contains(t, out, "hanging(braced) -> climbing_over")
	require.Contains(t, out, "climbing_over -> idle")
}

func TestUnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "--scenario", "ladder")
	require.ErrorContains(t, err, `unknown scenario "ladder"`)
}

func TestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climb.toml")
	out, err := execute(t, "defaults", path)
	require.NoError(t, err)
	require.Contains(t, out, path)

	s, err := settings.Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.DefaultSettings(), s)

	_, err = execute(t, "defaults", path)
	require.Error(t, err, "existing settings were overwritten")
}
