package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	logger "saga.io/saga-hpc/logger"
)

// Job parameters inherited from the benchmark suite. Every competitor
// supports the k-means initial partition only.
const (
	InitialPartition = 3 // k-means
	InitialMigration = 0 // SFC
)

// Batch job script for one (file, k, tool) submission
/*
#!/bin/bash
#SBATCH --job-name=Geographer_graph1.graph_k32
#SBATCH --nodes=2
...
srun <exe> ... --graphFile graph1.graph --numBlocks 32 ...
*/
const jobScriptTemplate = `#!/bin/bash
#SBATCH --job-name={{.JobName}}
#SBATCH --nodes={{.Nodes}}
#SBATCH --ntasks-per-node={{.TasksPerNode}}
#SBATCH --time={{.WallClock}}
{{- if .Account}}
#SBATCH --account={{.Account}}
{{- end}}
#SBATCH --partition={{.Class}}
#SBATCH --output={{.JobName}}.%j.out
#SBATCH --error={{.JobName}}.%j.err

srun {{.Exe}}{{range .ExtraArgs}} {{.}}{{end}} --graphFile {{.Path}} --numBlocks {{.BlockCount}} --fileFormat {{.FileFormat}} --dimensions {{.Dimension}} --initialPartition {{.InitialPartition}} --initialMigration {{.InitialMigration}} --repeatTimes {{.RepeatTimes}}
`

var jobScript = template.Must(template.New("jobscript").Parse(jobScriptTemplate))

type jobScriptData struct {
	JobName          string
	Nodes            int
	TasksPerNode     int
	WallClock        string
	Account          string
	Class            string
	Exe              string
	ExtraArgs        []string
	Path             string
	BlockCount       int
	FileFormat       int
	Dimension        int
	InitialPartition int
	InitialMigration int
	RepeatTimes      int
}

// runCommand invokes the scheduler submit command, returning its combined
// output. Swapped out in tests.
type runCommand func(name string, args ...string) ([]byte, error)

var jobSubmittedRegexp = regexp.MustCompile(`Submitted batch job (\d+)`)

// BatchSubmitter generates batch job scripts and hands them to the
// cluster's submit command, one job per (file, k, tool) combination.
type BatchSubmitter struct {
	Config SagaConfig
	Out    io.Writer
	Run    runCommand
}

func NewBatchSubmitter(config SagaConfig) *BatchSubmitter {
	return &BatchSubmitter{
		Config: config,
		Out:    os.Stdout,
		Run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// SubmitExperiment submits one job per block count with the named tool.
// A failed submission is reported and does not block the remaining block
// counts; the operator already confirmed the batch interactively.
func (b *BatchSubmitter) SubmitExperiment(exp *Experiment, tool string) error {
	toolConfig, ok := b.Config.Tools[tool]
	if !ok {
		return errors.New("submit: unknown tool " + tool)
	}
	var failed []string
	for i, k := range exp.BlockCounts {
		scriptFile, err := b.writeJobScript(exp, i, tool, toolConfig)
		if err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		out, err := b.Run(b.Config.SubmitCommand, scriptFile)
		if err != nil {
			logger.ErrorPrintf("submit: %s k=%d: %v: %s", tool, k, err, out)
			failed = append(failed, strconv.Itoa(k))
			continue
		}
		match := jobSubmittedRegexp.FindStringSubmatch(string(out))
		if len(match) < 2 {
			logger.ErrorPrintf("submit: %s k=%d: unexpected scheduler output: %s", tool, k, out)
			failed = append(failed, strconv.Itoa(k))
			continue
		}
		fmt.Fprintf(b.Out, "Submitted job %s: %s k=%d\n", match[1], tool, k)
	}
	if len(failed) > 0 {
		return errors.New("submit: " + tool + " failed for k=" + strings.Join(failed, ","))
	}
	return nil
}

// SubmitAllCompetitors submits the experiment with every configured tool,
// in sorted name order.
func (b *BatchSubmitter) SubmitAllCompetitors(exp *Experiment) error {
	var errs []string
	for _, tool := range b.Config.ToolNames() {
		if err := b.SubmitExperiment(exp, tool); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (b *BatchSubmitter) writeJobScript(exp *Experiment, index int, tool string, toolConfig ToolConfig) (string, error) {
	k := exp.BlockCounts[index]
	tasksPerNode := b.Config.TasksPerNode
	if tasksPerNode <= 0 {
		tasksPerNode = SagaTasksPerNode
	}
	data := jobScriptData{
		JobName:          fmt.Sprintf("%s_%s_k%d", tool, exp.Graphs[index], k),
		Nodes:            (k + tasksPerNode - 1) / tasksPerNode,
		TasksPerNode:     tasksPerNode,
		WallClock:        b.Config.WallClock,
		Account:          b.Config.Account,
		Class:            b.Config.Class,
		Exe:              toolConfig.Exe,
		ExtraArgs:        toolConfig.Args,
		Path:             exp.Paths[index],
		BlockCount:       k,
		FileFormat:       exp.FileFormat,
		Dimension:        exp.Dimension,
		InitialPartition: InitialPartition,
		InitialMigration: InitialMigration,
		RepeatTimes:      b.Config.RepeatTimes,
	}
	dir := b.Config.ScriptsDir
	if dir == "" {
		dir = "."
	}
	scriptFile := filepath.Join(dir, data.JobName+".sbatch")
	f, err := os.Create(scriptFile)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := jobScript.Execute(f, data); err != nil {
		return "", err
	}
	logger.DebugPrintf("wrote job script %s", scriptFile)
	return scriptFile, nil
}
