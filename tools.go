package main

import (
	"fmt"

	saga "saga.io/saga-hpc/core"
)

type ToolsCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

var toolsCommand ToolsCommand

func (x *ToolsCommand) Execute(args []string) error {
	if x.Help {
		return saga.CreateHelpErr()
	}
	config := saga.LoadSagaConfig()
	for _, name := range config.ToolNames() {
		fmt.Println(name)
	}
	return nil
}

func init() {
	parser.AddCommand("tools",
		"list known partitioning tools",
		"List the partitioning tools the all-competitors submission covers",
		&toolsCommand)
}
