package core

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Experiment kinds understood by the submission backend.
const (
	// Single input file partitioned for an explicit list of k values.
	ExpTypeSingleFile = 2
)

// ID used for experiments not yet registered with the backend.
const ExpIDUnassigned = -1

// Input file format codes.
const (
	FileFormatMetis  = 1
	FileFormatBinary = 6
)

// Experiment describes one benchmark run: a single graph file to be
// partitioned into each of the listed block counts. Paths and Graphs carry
// one entry per block count so the backend can treat every (file, k) pair
// uniformly.
type Experiment struct {
	ExpType     int      `json:"exp_type"`
	Dimension   int      `json:"dimension"`
	FileFormat  int      `json:"file_format"`
	ID          int      `json:"id"`
	BlockCounts []int    `json:"block_counts"`
	Size        int      `json:"size"`
	Paths       []string `json:"paths"`
	Graphs      []string `json:"graphs"`
}

// NewSingleFileExperiment builds the descriptor for one file and an explicit
// k list. The input path is repeated once per block count.
func NewSingleFileExperiment(fileName string, blockCounts []int, fileFormat, dimension int) *Experiment {
	size := len(blockCounts)
	exp := &Experiment{
		ExpType:     ExpTypeSingleFile,
		Dimension:   dimension,
		FileFormat:  fileFormat,
		ID:          ExpIDUnassigned,
		BlockCounts: blockCounts,
		Size:        size,
		Paths:       make([]string, size),
		Graphs:      make([]string, size),
	}
	for i := 0; i < size; i++ {
		exp.Paths[i] = fileName
		exp.Graphs[i] = filepath.Base(fileName)
	}
	return exp
}

// PrintExp writes a summary of the experiment for operator review before
// anything is submitted.
func (exp *Experiment) PrintExp(w io.Writer) {
	blocks := make([]string, len(exp.BlockCounts))
	for i, k := range exp.BlockCounts {
		blocks[i] = strconv.Itoa(k)
	}
	fmt.Fprintf(w, "experiment type: %d, ID: %d\n", exp.ExpType, exp.ID)
	fmt.Fprintf(w, "	dimension: %d, file format: %d\n", exp.Dimension, exp.FileFormat)
	if exp.Size > 0 {
		fmt.Fprintf(w, "	graph: %s\n", exp.Graphs[0])
		fmt.Fprintf(w, "	path: %s\n", exp.Paths[0])
	}
	fmt.Fprintf(w, "	k: %s\n", strings.Join(blocks, " "))
}
