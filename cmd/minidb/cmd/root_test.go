package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/ssargent/minidb/pkg/api"
	"github.com/ssargent/minidb/pkg/config"
	"github.com/ssargent/minidb/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with an isolated home directory so no
// user configuration leaks into the test
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	if container == nil {
		SetContainer(di.NewContainer())
	}

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

type fakeStarter struct {
	config  api.ServerConfig
	querier api.RowQuerier
	err     error
}

func (s *fakeStarter) StartServer(querier api.RowQuerier, config api.ServerConfig, logger logrus.FieldLogger) error {
	s.querier = querier
	s.config = config
	return s.err
}

type fakeServerFactory struct {
	starter *fakeStarter
}

func (f *fakeServerFactory) CreateServerStarter() api.ServerStarter {
	return f.starter
}

func withServer(t *testing.T, starter *fakeStarter) {
	t.Helper()
	c := di.NewContainer()
	c.SetServerFactory(&fakeServerFactory{starter: starter})
	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })
}

func TestContainerNotInitialized(t *testing.T) {
	SetContainer(nil)
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"schema", "x.mdb"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency container not initialized")
}

func TestPrintError(t *testing.T) {
	initial := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = initial }()

	var buf bytes.Buffer
	printError(&buf, errors.New("row not found"))
	assert.Equal(t, "Error: row not found\n", buf.String())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Output.Format = "json"
	require.NoError(t, config.SaveConfig(cfg, configPath))

	file := contactsFile(t)
	stdout, _, err := run(t, "--config", configPath, "row", file, "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"fields"`)

	// Flags win over the file
	stdout, _, err = run(t, "--config", configPath, "--format", "table", "row", file, "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Row 0 (offset")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MINIDB_OUTPUT_FORMAT", "json")

	stdout, _, err := run(t, "row", contactsFile(t), "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"cid@y.com"`)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := run(t, "--format", "xml", "row", contactsFile(t), "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestLogLevelFlag(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "row", contactsFile(t), "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "row found by index")

	_, _, err = run(t, "--log-level", "loud", "row", contactsFile(t), "1")
	assert.Error(t, err)
}
