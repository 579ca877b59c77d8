package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSingleFileExperiment(t *testing.T) {
	exp := NewSingleFileExperiment("/scratch/meshes/hugebubbles.graph",
		[]int{16, 32, 64}, FileFormatMetis, 2)

	assert.Equal(t, ExpTypeSingleFile, exp.ExpType)
	assert.Equal(t, ExpIDUnassigned, exp.ID)
	assert.Equal(t, 3, exp.Size)
	assert.Len(t, exp.Paths, exp.Size)
	assert.Len(t, exp.Graphs, exp.Size)
	assert.Equal(t, "/scratch/meshes/hugebubbles.graph", exp.Paths[2])
	assert.Equal(t, "hugebubbles.graph", exp.Graphs[0])
}

func TestPrintExp(t *testing.T) {
	exp := NewSingleFileExperiment("/scratch/meshes/hugebubbles.graph",
		[]int{16, 32}, FileFormatMetis, 2)

	var out bytes.Buffer
	exp.PrintExp(&out)
	summary := out.String()
	assert.Contains(t, summary, "experiment type: 2")
	assert.Contains(t, summary, "graph: hugebubbles.graph")
	assert.Contains(t, summary, "path: /scratch/meshes/hugebubbles.graph")
	assert.Contains(t, summary, "k: 16 32")
}
