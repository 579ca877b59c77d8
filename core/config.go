package core

import (
	"errors"
	"io/ioutil"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	SagaConfigPath      = "/.config/saga-hpc/"
	SagaConfigFilename  = "SaGa.config"
	SagaConfigFilePerms = 0600
)

const SagaConfigEnv = "SAGA_HPC_CONFIG"

// Cluster defaults used when no config file exists. 16 tasks per node is
// where the multiple-of-16 warning on block counts comes from.
const (
	SagaSubmitCommand = "sbatch"
	SagaJobClass      = "general"
	SagaTasksPerNode  = 16
	SagaWallClock     = "00:30:00"
	SagaRepeatTimes   = 5
	SagaDefaultTool   = "Geographer"
)

// ToolConfig locates one partitioning tool on the cluster.
type ToolConfig struct {
	Exe  string   `yaml:"exe"`
	Args []string `yaml:"args,omitempty"`
}

// Layout for the SaGa config file
/*
submit_command: sbatch
account: pr12ab
class: general
tasks_per_node: 16
wall_clock: "00:30:00"
repeat_times: 5
scripts_dir: /gpfs/work/pr12ab/jobscripts
tools:
  Geographer:
    exe: /gpfs/work/pr12ab/bin/Geographer
*/
type SagaConfig struct {
	SubmitCommand string                `yaml:"submit_command"`
	Account       string                `yaml:"account,omitempty"`
	Class         string                `yaml:"class"`
	TasksPerNode  int                   `yaml:"tasks_per_node"`
	WallClock     string                `yaml:"wall_clock"`
	RepeatTimes   int                   `yaml:"repeat_times"`
	ScriptsDir    string                `yaml:"scripts_dir,omitempty"`
	Tools         map[string]ToolConfig `yaml:"tools"`
}

// DefaultConfig covers the competitor set known to the benchmark suite.
func DefaultConfig() SagaConfig {
	return SagaConfig{
		SubmitCommand: SagaSubmitCommand,
		Class:         SagaJobClass,
		TasksPerNode:  SagaTasksPerNode,
		WallClock:     SagaWallClock,
		RepeatTimes:   SagaRepeatTimes,
		Tools: map[string]ToolConfig{
			"Geographer":    {Exe: "Geographer"},
			"parMetisGraph": {Exe: "parMetisGraph"},
			"parMetisGeom":  {Exe: "parMetisGeom"},
		},
	}
}

// ToolNames returns the configured tool names in sorted order.
func (c SagaConfig) ToolNames() []string {
	names := make([]string, 0, len(c.Tools))
	for name := range c.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from environment or use backup
// Use current directory as last resort
func getSagaConfigPath() string {
	configPath := os.Getenv(SagaConfigEnv)
	if fileExist(configPath) {
		return configPath
	}
	backupPath := (os.Getenv("HOME") + SagaConfigPath)
	if fileExist(backupPath + SagaConfigFilename) {
		return backupPath + SagaConfigFilename
	} else {
		if err := os.MkdirAll(backupPath, 0744); err != nil {
			return SagaConfigFilename
		}
	}
	return backupPath + SagaConfigFilename
}

func WriteSagaConfig(config SagaConfig) error {
	configFile := getSagaConfigPath()
	file, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	// Ensure config file uses proper permissions
	os.Chmod(configFile, SagaConfigFilePerms)
	err = ioutil.WriteFile(configFile, file, SagaConfigFilePerms)
	return err
}

func ReadSagaConfig() (SagaConfig, error) {
	filename := getSagaConfigPath()
	if !fileExist(filename) {
		return SagaConfig{}, errors.New("cannot read SaGa config")
	}
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return SagaConfig{}, err
	}
	var config SagaConfig
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return SagaConfig{}, errors.New("invalid SaGa config")
	}
	return config, nil
}

// LoadSagaConfig reads the config file, falling back to the built-in
// defaults for missing files and unset fields.
func LoadSagaConfig() SagaConfig {
	config, err := ReadSagaConfig()
	if err != nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.SubmitCommand == "" {
		config.SubmitCommand = defaults.SubmitCommand
	}
	if config.Class == "" {
		config.Class = defaults.Class
	}
	if config.TasksPerNode == 0 {
		config.TasksPerNode = defaults.TasksPerNode
	}
	if config.WallClock == "" {
		config.WallClock = defaults.WallClock
	}
	if config.RepeatTimes == 0 {
		config.RepeatTimes = defaults.RepeatTimes
	}
	if len(config.Tools) == 0 {
		config.Tools = defaults.Tools
	}
	return config
}
