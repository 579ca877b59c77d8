package main

import (
	saga "saga.io/saga-hpc/core"
)

type SingleRunCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

var singleRunCommand SingleRunCommand

func (x *SingleRunCommand) Execute(args []string) error {
	if x.Help {
		return saga.CreateHelpErr()
	}
	// scheduler style flags (-f, -k, -ff, -d) are parsed by the command
	// itself, not go-flags
	return saga.SingleRun(args)
}

func init() {
	parser.AddCommand("singlerun",
		"submit jobs for a single graph file",
		"Submit batch jobs for the selected partitioning tools for a single "+
			"graph file and one or more values of k (appropriate when one "+
			"experiment run was forgotten or crashed)",
		&singleRunCommand)
}
