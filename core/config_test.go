package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSagaConfigDefaults(t *testing.T) {
	t.Setenv(SagaConfigEnv, filepath.Join(t.TempDir(), "nosuch.config"))
	t.Setenv("HOME", t.TempDir())

	config := LoadSagaConfig()
	assert.Equal(t, SagaSubmitCommand, config.SubmitCommand)
	assert.Equal(t, SagaTasksPerNode, config.TasksPerNode)
	assert.Equal(t, SagaRepeatTimes, config.RepeatTimes)
	assert.Equal(t,
		[]string{"Geographer", "parMetisGeom", "parMetisGraph"},
		config.ToolNames())
}

func TestLoadSagaConfigFromFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "SaGa.config")
	content := `submit_command: llsubmit
account: pr12ab
tasks_per_node: 28
tools:
  Geographer:
    exe: /opt/saga/bin/Geographer
    args: ["--storeInfo"]
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	t.Setenv(SagaConfigEnv, configFile)

	config := LoadSagaConfig()
	assert.Equal(t, "llsubmit", config.SubmitCommand)
	assert.Equal(t, "pr12ab", config.Account)
	assert.Equal(t, 28, config.TasksPerNode)
	assert.Equal(t, "/opt/saga/bin/Geographer", config.Tools["Geographer"].Exe)
	assert.Equal(t, []string{"--storeInfo"}, config.Tools["Geographer"].Args)
	// unset fields fall back to defaults
	assert.Equal(t, SagaJobClass, config.Class)
	assert.Equal(t, SagaWallClock, config.WallClock)
	assert.Equal(t, SagaRepeatTimes, config.RepeatTimes)
}

func TestWriteSagaConfigRoundTrip(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "SaGa.config")
	require.NoError(t, os.WriteFile(configFile, []byte("{}\n"), 0600))
	t.Setenv(SagaConfigEnv, configFile)

	config := DefaultConfig()
	config.Account = "pr99zz"
	config.ScriptsDir = "/gpfs/work/pr99zz/jobscripts"
	require.NoError(t, WriteSagaConfig(config))

	read, err := ReadSagaConfig()
	require.NoError(t, err)
	assert.Equal(t, config, read)
}
