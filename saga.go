package main

import (
	"github.com/jessevdk/go-flags"
	saga "saga.io/saga-hpc/core"
)

type SagaConfigFlags struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

type SagaCommand struct {
	Config        SagaConfigFlags `group:"Configuration Options"`
	SubmitCommand string          `short:"s" long:"submitCommand" description:"batch submit command" default:"sbatch"`
	Account       string          `short:"a" long:"account" description:"project account to charge"`
	Class         string          `short:"c" long:"class" description:"job class/partition" default:"general"`
	TasksPerNode  int             `short:"n" long:"tasksPerNode" description:"tasks per node" default:"16"`
	WallClock     string          `short:"w" long:"wallClock" description:"wall clock limit" default:"00:30:00"`
	RepeatTimes   int             `short:"r" long:"repeatTimes" description:"repetitions per submitted run" default:"5"`
	ScriptsDir    string          `long:"scriptsDir" description:"directory for generated job scripts"`
}

var sagaCommand SagaCommand

func optionIsSet(name string) bool {
	var opt *flags.Option
	if parser.Command.Active != nil {
		opt = parser.Command.Active.FindOptionByLongName(name)
	}
	return opt != nil && !opt.IsSetDefault()
}

func (x *SagaCommand) Execute(args []string) error {
	if x.Config.Help {
		return saga.CreateHelpErr()
	}
	config := saga.LoadSagaConfig()
	if optionIsSet("submitCommand") {
		config.SubmitCommand = x.SubmitCommand
	}
	if optionIsSet("account") {
		config.Account = x.Account
	}
	if optionIsSet("class") {
		config.Class = x.Class
	}
	if optionIsSet("tasksPerNode") {
		config.TasksPerNode = x.TasksPerNode
	}
	if optionIsSet("wallClock") {
		config.WallClock = x.WallClock
	}
	if optionIsSet("repeatTimes") {
		config.RepeatTimes = x.RepeatTimes
	}
	if optionIsSet("scriptsDir") {
		config.ScriptsDir = x.ScriptsDir
	}
	return saga.WriteSagaConfig(config)
}

func init() {
	parser.AddCommand("saga",
		"SaGa cluster configuration",
		"The saga command updates the cluster configuration used when "+
			"generating and submitting batch job scripts",
		&sagaCommand)
}
