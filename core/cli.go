package core

import (
	"errors"
	"flag"
	"io/ioutil"
	"strconv"
	"strings"
)

// Option descriptions
const (
	singleRunToolsDesc = "Name of the tools. It can be: Geographer, " +
		"parMetisGraph, parMetisGeom. Give \"all\" to submit with every " +
		"known competitor."
	singleRunFileNameDesc   = "The file/graph to be partitioned."
	singleRunNumBlocksDesc  = "The number of blocks/parts to partition to."
	singleRunFileFormatDesc = "The format of the file given."
	singleRunDimensionsDesc = "The dimensions of the coordinates."
)

// SingleRunOptions holds the parsed and type-checked singlerun arguments.
type SingleRunOptions struct {
	Tools       []string
	FileName    string
	BlockCounts []int
	FileFormat  int
	Dimensions  int
}

type arrayFlags []string

func (i *arrayFlags) String() string {
	return strings.Join(*i, " ")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func (i *arrayFlags) Get() interface{} {
	return i
}

// Scheduler style CLIs accept short and long command line options
// Register both with the same Golang flag
func setFlagString(flags *flag.FlagSet, short, long, value, usage string) *string {
	flagVar := flags.String(short, value, usage)
	flags.StringVar(flagVar, long, value, usage)
	return flagVar
}

func setFlagVar(flags *flag.FlagSet, value flag.Value, short, long, usage string) {
	flags.Var(value, short, usage)
	flags.Var(value, long, usage)
}

// expandList splits comma separated values out of repeated list flags.
// `-k 16,32 -k 64` yields [16 32 64].
func expandList(values arrayFlags) []string {
	var list []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); len(item) > 0 {
				list = append(list, item)
			}
		}
	}
	return list
}

// parseSingleRunArgs validates the raw singlerun arguments into typed
// options. Numeric values arrive as strings and are coerced here so a bad
// number fails before any comparison runs.
func parseSingleRunArgs(args []string) (opts SingleRunOptions, err error) {

	flags := flag.NewFlagSet("singlerun", flag.ContinueOnError)
	flags.SetOutput(ioutil.Discard)

	var tools arrayFlags
	setFlagVar(flags, &tools, "t", "tools", singleRunToolsDesc)
	var blocks arrayFlags
	setFlagVar(flags, &blocks, "k", "numBlocks", singleRunNumBlocksDesc)
	fileName := setFlagString(flags, "f", "fileName", "", singleRunFileNameDesc)
	fileFormat := setFlagString(flags, "ff", "fileFormat", "", singleRunFileFormatDesc)
	dimensions := setFlagString(flags, "d", "dimensions", "", singleRunDimensionsDesc)

	if flags.Parse(args) != nil {
		err = errors.New("singlerun: cannot process flags")
		return
	}

	if len(*fileName) == 0 {
		err = errors.New("singlerun: missing -f/--fileName")
		return
	}
	opts.FileName = *fileName

	blockList := expandList(blocks)
	if len(blockList) == 0 {
		err = errors.New("singlerun: missing -k/--numBlocks")
		return
	}
	for _, value := range blockList {
		k, perr := strconv.Atoi(value)
		if perr != nil {
			err = errors.New("singlerun: invalid block count: " + value)
			return
		}
		opts.BlockCounts = append(opts.BlockCounts, k)
	}

	if len(*fileFormat) == 0 {
		err = errors.New("singlerun: missing -ff/--fileFormat")
		return
	}
	if opts.FileFormat, err = strconv.Atoi(*fileFormat); err != nil {
		err = errors.New("singlerun: invalid file format: " + *fileFormat)
		return
	}

	if len(*dimensions) == 0 {
		err = errors.New("singlerun: missing -d/--dimensions")
		return
	}
	if opts.Dimensions, err = strconv.Atoi(*dimensions); err != nil {
		err = errors.New("singlerun: invalid dimensions: " + *dimensions)
		return
	}

	opts.Tools = expandList(tools)
	if len(opts.Tools) == 0 {
		opts.Tools = []string{SagaDefaultTool}
	}
	return
}
