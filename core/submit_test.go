package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubmitter(t *testing.T) (*BatchSubmitter, *bytes.Buffer) {
	t.Helper()
	config := DefaultConfig()
	config.ScriptsDir = t.TempDir()
	config.Account = "pr12ab"
	out := &bytes.Buffer{}
	b := NewBatchSubmitter(config)
	b.Out = out
	return b, out
}

func TestSubmitExperimentRunsSchedulerPerBlockCount(t *testing.T) {
	b, out := newTestSubmitter(t)

	var scripts []string
	jobID := 100
	b.Run = func(name string, args ...string) ([]byte, error) {
		assert.Equal(t, "sbatch", name)
		require.Len(t, args, 1)
		scripts = append(scripts, args[0])
		jobID++
		return []byte(fmt.Sprintf("Submitted batch job %d\n", jobID)), nil
	}

	exp := NewSingleFileExperiment("/data/graph1.graph", []int{16, 48}, FileFormatMetis, 2)
	require.NoError(t, b.SubmitExperiment(exp, "Geographer"))
	require.Len(t, scripts, 2)
	assert.Contains(t, out.String(), "Submitted job 101: Geographer k=16")
	assert.Contains(t, out.String(), "Submitted job 102: Geographer k=48")

	script, err := os.ReadFile(scripts[1])
	require.NoError(t, err)
	content := string(script)
	assert.Contains(t, content, "#SBATCH --job-name=Geographer_graph1.graph_k48")
	// 48 tasks on 16 tasks per node
	assert.Contains(t, content, "#SBATCH --nodes=3")
	assert.Contains(t, content, "#SBATCH --ntasks-per-node=16")
	assert.Contains(t, content, "#SBATCH --account=pr12ab")
	assert.Contains(t, content, "#SBATCH --partition=general")
	assert.Contains(t, content, "--graphFile /data/graph1.graph")
	assert.Contains(t, content, "--numBlocks 48")
	assert.Contains(t, content, "--fileFormat 1")
	assert.Contains(t, content, "--dimensions 2")
	assert.Contains(t, content, "--initialPartition 3")
	assert.Contains(t, content, "--initialMigration 0")
	assert.Contains(t, content, "--repeatTimes 5")
}

func TestSubmitExperimentRoundsNodesUp(t *testing.T) {
	b, _ := newTestSubmitter(t)

	var script string
	b.Run = func(name string, args ...string) ([]byte, error) {
		script = args[0]
		return []byte("Submitted batch job 7"), nil
	}

	exp := NewSingleFileExperiment("graph1.graph", []int{17}, FileFormatMetis, 2)
	require.NoError(t, b.SubmitExperiment(exp, "Geographer"))

	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(content), "#SBATCH --nodes=2")
}

func TestSubmitExperimentUnknownTool(t *testing.T) {
	b, _ := newTestSubmitter(t)
	b.Run = func(name string, args ...string) ([]byte, error) {
		t.Fatal("scheduler must not run for an unknown tool")
		return nil, nil
	}

	exp := NewSingleFileExperiment("graph1.graph", []int{16}, FileFormatMetis, 2)
	err := b.SubmitExperiment(exp, "kaHiP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestSubmitExperimentContinuesPastFailures(t *testing.T) {
	b, out := newTestSubmitter(t)

	calls := 0
	b.Run = func(name string, args ...string) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("sbatch: error: invalid partition"), errors.New("exit status 1")
		}
		return []byte("Submitted batch job 55"), nil
	}

	exp := NewSingleFileExperiment("graph1.graph", []int{16, 32}, FileFormatMetis, 2)
	err := b.SubmitExperiment(exp, "Geographer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "k=16")
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "Submitted job 55: Geographer k=32")
}

func TestSubmitExperimentRejectsUnexpectedOutput(t *testing.T) {
	b, _ := newTestSubmitter(t)
	b.Run = func(name string, args ...string) ([]byte, error) {
		return []byte("queue is closed"), nil
	}

	exp := NewSingleFileExperiment("graph1.graph", []int{16}, FileFormatMetis, 2)
	err := b.SubmitExperiment(exp, "Geographer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed for k=16")
}

func TestSubmitAllCompetitors(t *testing.T) {
	b, _ := newTestSubmitter(t)

	var submitted []string
	b.Run = func(name string, args ...string) ([]byte, error) {
		submitted = append(submitted, args[0])
		return []byte("Submitted batch job 9"), nil
	}

	exp := NewSingleFileExperiment("graph1.graph", []int{16}, FileFormatMetis, 2)
	require.NoError(t, b.SubmitAllCompetitors(exp))
	// sorted tool order, one script per tool
	require.Len(t, submitted, 3)
	assert.Contains(t, submitted[0], "Geographer_")
	assert.Contains(t, submitted[1], "parMetisGeom_")
	assert.Contains(t, submitted[2], "parMetisGraph_")
}
