package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "saga.io/saga-hpc/logger"
)

// SingleRunName is the subcommand named in user facing messages.
const SingleRunName = "singlerun"

// Submitter is the backend entry point pair the CLI dispatches to.
type Submitter interface {
	SubmitExperiment(exp *Experiment, tool string) error
	SubmitAllCompetitors(exp *Experiment) error
}

// Session carries the interactive streams and the submission backend so
// tests can supply canned confirmations and a recording submitter instead
// of real stdin and a real scheduler.
type Session struct {
	In        io.Reader
	Out       io.Writer
	Submitter Submitter

	reader *bufio.Reader
}

func NewSession() *Session {
	return &Session{
		In:        os.Stdin,
		Out:       os.Stdout,
		Submitter: NewBatchSubmitter(LoadSagaConfig()),
	}
}

// SingleRun submits benchmark jobs for a single graph file and one or more
// values of k with the operator driving confirmation interactively.
func SingleRun(args []string) error {
	return NewSession().SingleRun(args)
}

func (s *Session) SingleRun(args []string) error {
	opts, err := parseSingleRunArgs(args)
	if err != nil {
		return err
	}
	logger.DebugObj("singlerun options", opts)

	fileEnding := strings.TrimPrefix(filepath.Ext(opts.FileName), ".")
	if (opts.FileFormat == FileFormatMetis && fileEnding != "graph") ||
		(opts.FileFormat == FileFormatBinary && fileEnding != "bgf") {
		fmt.Fprintln(s.Out, "WARNING: file format and file given probably do not agree.")
	}

	// the one fatal precondition
	if !fileExist(opts.FileName) {
		return errors.New("singlerun: file " + opts.FileName + " does not exist")
	}

	for _, k := range opts.BlockCounts {
		if k%SagaTasksPerNode != 0 {
			fmt.Fprintf(s.Out, "WARNING: k= %d is not a multiple of %d\n", k, SagaTasksPerNode)
		}
	}
	if opts.Dimensions <= 0 {
		fmt.Fprintf(s.Out, "WARNING: wrong value for dimension: %d\n", opts.Dimensions)
	}
	if opts.FileFormat < 0 {
		fmt.Fprintf(s.Out, "WARNING: wrong value for fileFormat: %d\n", opts.FileFormat)
	}

	exp := NewSingleFileExperiment(opts.FileName, opts.BlockCounts, opts.FileFormat, opts.Dimensions)
	exp.PrintExp(s.Out)
	logger.DebugObj("experiment", exp)

	// Only the first entry selects the all-competitors path; any further
	// entries are ignored, matching the historical script behavior.
	if opts.Tools[0] == "all" {
		fmt.Fprintln(s.Out, "\n\tWARNING: this submits the experiment with all known competitor tools!")
		if !s.confirm("Continue? :") {
			fmt.Fprintln(s.Out, "Not submitting experiments, aborting...")
			return nil
		}
		if err := s.Submitter.SubmitAllCompetitors(exp); err != nil {
			fmt.Fprintf(s.Out, "WARNING: %v\n", err)
		}
		fmt.Fprintln(s.Out, "Exiting "+SingleRunName)
		return nil
	}

	for _, tool := range opts.Tools {
		if !s.confirm("Submit experiments with >>> " + tool + " <<< Y/N:") {
			fmt.Fprintln(s.Out, "Not submitting experiments...")
			continue
		}
		if err := s.Submitter.SubmitExperiment(exp, tool); err != nil {
			fmt.Fprintf(s.Out, "WARNING: %v\n", err)
		}
	}
	fmt.Fprintln(s.Out, "Exiting "+SingleRunName)
	return nil
}

func (s *Session) stdin() *bufio.Reader {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	return s.reader
}

// confirm blocks until the operator answers y or n, case insensitive,
// re-prompting on anything else. A closed input counts as a decline.
func (s *Session) confirm(prompt string) bool {
	in := s.stdin()
	fmt.Fprint(s.Out, prompt+" ")
	for {
		line, err := in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true
		case "n":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprint(s.Out, "Please type Y/y or N/n: ")
	}
}
