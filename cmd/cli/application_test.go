package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spellscan/internal/audit"
	"github.com/temirov/spellscan/internal/utils"
)

const testDictionaryContent = "this 3228469408\nis 4705743816\na 9081174698\ntest 217519225\nhello 20851286\nworld 531895934\n"

type applicationFixture struct {
	rootDirectory  string
	dictionaryPath string
}

func newApplicationFixture(testInstance *testing.T, files map[string]string) applicationFixture {
	testInstance.Helper()

	workspace := testInstance.TempDir()
	dictionaryPath := filepath.Join(workspace, "dictionary.txt")
	require.NoError(testInstance, os.WriteFile(dictionaryPath, []byte(testDictionaryContent), 0o600))

	rootDirectory := filepath.Join(workspace, "tree")
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o600))
	}

	return applicationFixture{rootDirectory: rootDirectory, dictionaryPath: dictionaryPath}
}

func executeApplication(testInstance *testing.T, application *Application, arguments ...string) (string, error) {
	testInstance.Helper()

	var output bytes.Buffer
	application.rootCommand.SetArgs(arguments)
	application.rootCommand.SetOut(&output)
	application.rootCommand.SetErr(&bytes.Buffer{})
	executionError := application.Execute()
	return output.String(), executionError
}

func TestApplicationVersionCommand(testInstance *testing.T) {
	application := NewApplication()
	application.versionResolver = func(context.Context) string {
		return "v2.0.0"
	}

	output, executionError := executeApplication(testInstance, application, "version")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "spellscan version: v2.0.0\n", output)
}

func TestApplicationAuditCommandEndToEnd(testInstance *testing.T) {
	fixture := newApplicationFixture(testInstance, map[string]string{
		"a.txt":      "this is a tset\n",
		"b.md":       "hello world\n",
		"notes.json": "tset\n",
	})

	output, executionError := executeApplication(
		testInstance,
		NewApplication(),
		"--log-level", "error",
		"audit", fixture.rootDirectory,
		"--dictionary", fixture.dictionaryPath,
		"--color", "never",
	)
	require.NoError(testInstance, executionError)

	expectedPath := filepath.Join(fixture.rootDirectory, "a.txt")
	require.Equal(testInstance, expectedPath+"\n1:   this is a tset\n1:   this is a test\n\n", output)
}

func TestApplicationAuditCommandReadsConfigurationFile(testInstance *testing.T) {
	fixture := newApplicationFixture(testInstance, map[string]string{
		"a.txt":     "this is a tset\n",
		"guide.rst": "hello wrold\n",
	})

	configurationPath := filepath.Join(testInstance.TempDir(), "spellscan.yaml")
	configurationContent := "common:\n  log_level: error\n" +
		"tools:\n  audit:\n    extensions: [\".rst\"]\n    color: never\n    fail_on_mistakes: true\n" +
		"    dictionary:\n      path: " + fixture.dictionaryPath + "\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	output, executionError := executeApplication(testInstance, NewApplication(), "--config", configurationPath, "audit", fixture.rootDirectory)
	require.ErrorIs(testInstance, executionError, audit.ErrMistakesFound)
	require.Contains(testInstance, output, filepath.Join(fixture.rootDirectory, "guide.rst"))
	require.Contains(testInstance, output, "1:   hello world")
	require.NotContains(testInstance, output, "a.txt")
}

func TestApplicationAuditCommandReadsEnvironment(testInstance *testing.T) {
	fixture := newApplicationFixture(testInstance, map[string]string{"a.txt": "this is a tset\n"})

	testInstance.Setenv("SPELLSCAN_COMMON_LOG_LEVEL", "error")
	testInstance.Setenv("SPELLSCAN_TOOLS_AUDIT_FORMAT", "yaml")
	testInstance.Setenv("SPELLSCAN_TOOLS_AUDIT_DICTIONARY_PATH", fixture.dictionaryPath)

	output, executionError := executeApplication(testInstance, NewApplication(), "audit", fixture.rootDirectory)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "mistake_count: 1")
	require.Contains(testInstance, output, "original: tset")
}

func TestApplicationAuditCommandMissingDictionaryFails(testInstance *testing.T) {
	fixture := newApplicationFixture(testInstance, map[string]string{"a.txt": "this is a tset\n"})

	output, executionError := executeApplication(
		testInstance,
		NewApplication(),
		"--log-level", "error",
		"audit", fixture.rootDirectory,
		"--dictionary", filepath.Join(fixture.rootDirectory, "absent.txt"),
	)
	require.Error(testInstance, executionError)
	require.Empty(testInstance, output)
}

func TestEmbeddedConfigurationMatchesDefaults(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.initializeConfiguration(nil))

	require.Equal(testInstance, audit.DefaultCommandConfiguration(), application.configuration.Tools.Audit)
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)

	require.True(testInstance, application.configurationMetadata.EmbeddedDefaultsApplied)
	require.Contains(testInstance, string(defaultConfigurationDocument()), "frequency_dictionary_en_82_765.txt")
}

func TestApplicationDefaultConfigCommandPrintsEmbeddedDocument(testInstance *testing.T) {
	output, executionError := executeApplication(testInstance, NewApplication(), "default-config")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, string(defaultConfigurationDocument()), output)
}

func TestApplicationMissingConfigurationFileFails(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), "absent.yaml")

	_, executionError := executeApplication(testInstance, NewApplication(), "--config", missingPath, "version")
	require.ErrorIs(testInstance, executionError, utils.ErrConfigurationFileMissing)
}

func TestApplicationDebugLogReportsEmbeddedDefaults(testInstance *testing.T) {
	application := NewApplication()
	var output bytes.Buffer
	var diagnostics bytes.Buffer
	application.rootCommand.SetArgs([]string{"--log-level", "debug", "version"})
	application.rootCommand.SetOut(&output)
	application.rootCommand.SetErr(&diagnostics)

	require.NoError(testInstance, application.Execute())

	var initializedEntry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(diagnostics.String()), "\n") {
		var entry map[string]any
		if json.Unmarshal([]byte(line), &entry) == nil && entry["msg"] == "configuration initialized" {
			initializedEntry = entry
		}
	}
	require.NotNil(testInstance, initializedEntry)
	require.Equal(testInstance, true, initializedEntry["embedded_defaults"])
}
