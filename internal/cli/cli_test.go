package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/appregister/internal/testutil"
	"github.com/specialistvlad/appregister/registry"
)

func execute(t *testing.T, args []string, opts ...Option) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := NewRootCmd(&out, &logs, opts...)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appregister.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoot_PrintsHelpWithoutSubcommand(t *testing.T) {
	out, _, err := execute(t, nil)

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "discover")
}

func TestRoot_InvalidSettingsAreExitCode2(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"discover", "--log-level", "verbose"}},
		{"log format", []string{"discover", "--log-format", "xml"}},
		{"unknown flag", []string{"discover", "--this-is-not-a-valid-flag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestDiscover_PrintsOutcomePerComponent(t *testing.T) {
	manifest := writeManifest(t, `
component "a" {}
component "b" {}
`)
	loader := testutil.NewScriptedLoader("a", "b").With("b", "questions", nil)

	out, _, err := execute(t, []string{"discover", "questions", "-c", manifest}, WithLoader(loader))

	require.NoError(t, err)
	assert.Contains(t, out, "COMPONENT")
	assert.Regexp(t, `a\s+questions\s+absent`, out)
	assert.Regexp(t, `b\s+questions\s+imported`, out)
}

func TestDiscover_ModuleFromEnvironment(t *testing.T) {
	t.Setenv("APPREGISTER_MODULE", "polls")
	t.Setenv("APPREGISTER_CONFIG", writeManifest(t, ``))
	loader := testutil.NewScriptedLoader("a").With("a", "polls", nil)

	out, _, err := execute(t, []string{"discover"}, WithLoader(loader))

	require.NoError(t, err)
	assert.Regexp(t, `a\s+polls\s+imported`, out)
	assert.Equal(t, []string{"a.polls"}, loader.Imports)
}

func TestDiscover_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("APPREGISTER_LOG_FORMAT", "json")
	t.Setenv("APPREGISTER_LOG_LEVEL", "debug")
	loader := testutil.NewScriptedLoader("a")

	_, logs, err := execute(t, []string{"discover", "-c", writeManifest(t, ``), "--log-format", "text"}, WithLoader(loader))

	require.NoError(t, err)
	assert.Contains(t, logs, "msg=\"Running discovery.\"")
}

func TestDiscover_FailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	loader := testutil.NewScriptedLoader("a", "b").
		With("a", "registrations", func() error { return boom })

	out, _, err := execute(t, []string{"discover", "-c", writeManifest(t, ``)}, WithLoader(loader))

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `discovery of "registrations" failed`)
	assert.Regexp(t, `a\s+registrations\s+failed`, out)
	assert.NotContains(t, loader.Imports, "b.registrations")
}

func TestDiscover_ManifestError(t *testing.T) {
	_, _, err := execute(t, []string{"discover", "-c", writeManifest(t, `component "a" {`)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestComponents(t *testing.T) {
	manifest := writeManifest(t, `component "quiz" {}`)
	loader := testutil.NewScriptedLoader("quiz", "extra")

	out, _, err := execute(t, []string{"components", "-c", manifest}, WithLoader(loader))

	require.NoError(t, err)
	assert.Regexp(t, `NAME\s+LOCATION\s+SUBMODULES`, out)
	assert.Regexp(t, `quiz\s+quiz\s+-`, out)
	assert.Regexp(t, `-\s+extra\s+-`, out)
}

type publishedByCLI struct{}

func TestTypes_RunsDiscoveryFirst(t *testing.T) {
	var path string
	loader := testutil.NewScriptedLoader("a").With("a", "registrations", func() error {
		path = registry.Publish[publishedByCLI]()
		return nil
	})
	t.Cleanup(func() { registry.DefaultTypes.Forget(path) })

	out, _, err := execute(t, []string{"types", "-c", writeManifest(t, ``)}, WithLoader(loader))

	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Contains(t, out, path+"\n")
}

func TestTypes_NoDiscover(t *testing.T) {
	loader := testutil.NewScriptedLoader("a")

	_, _, err := execute(t, []string{"types", "--no-discover", "-c", writeManifest(t, ``)}, WithLoader(loader))

	require.NoError(t, err)
	assert.Empty(t, loader.Imports)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, []string{"version"})

	require.NoError(t, err)
	assert.Contains(t, out, "appregister "+Version)
}
