// Package process reads YAML files, applies edits given on the command line and writes them back with their comments
package process

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flight_cfg/deps"
	"flight_cfg/util/file"
	"flight_cfg/util/input"
	"flight_cfg/util/network"
	"flight_cfg/util/url"
	"flight_cfg/yamlfile"

	"github.com/alitto/pond"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Result represents outcome type of a processed file
type Result string

const (
	Written   Result = "Written"
	Unchanged Result = "Unchanged"
	Skipped   Result = "Skipped"
	Failed    Result = "Failed"
	Valid     Result = "Valid"
	Invalid   Result = "Invalid"
)

// PathNotFoundError represents error returned if comment is set for a path which has no value
type PathNotFoundError struct {
	Path string
}

// Error is used to satisfy golang error interface
func (e PathNotFoundError) Error() string {
	return fmt.Sprintf("Path %v not found, set a value before commenting it", e.Path)
}

// Job represents a file to process
type Job struct {
	Input  string
	Output string
	// Skip is true if existing output should not be overwritten
	Skip bool
}

// Outcome represents result of a processed job
type Outcome struct {
	Job    Job
	Result Result
	Err    error
}

// Edits represents changes applied to every processed file
type Edits struct {
	// Set maps paths to values written as YAML. Empty value removes the path.
	Set map[string]string
	// Comment maps paths to their block comments. Empty comment removes the existing one.
	Comment map[string]string
}

// Jobs returns jobs for <inputs> writing to <outputDir>.
//
// Local inputs are written in place if <outputDir> is empty, remote inputs require it. Duplicated inputs are
// processed once.
func (r repo) Jobs(inputs []string, outputDir string) ([]Job, error) {
	var jobs []Job
	for _, inp := range lo.Uniq(inputs) {
		output, err := outputPath(inp, outputDir)
		if err != nil {
			return nil, err
		}
		if dup, ok := lo.Find(jobs, func(j Job) bool { return j.Output == output }); ok {
			return nil, errors.Newf("Inputs %v and %v would be written to the same file %v", dup.Input, inp, output)
		}
		jobs = append(jobs, Job{Input: inp, Output: output})
	}
	return jobs, nil
}

// outputPath returns path of the file processed <inp> should be written to
func outputPath(inp, outputDir string) (string, error) {
	if url.IsRemote(inp) {
		if outputDir == "" {
			return "", errors.Newf("Output directory is required to process remote input %v", inp)
		}
		name, err := url.FileName(inp)
		if err != nil {
			return "", err
		}
		return filepath.Join(outputDir, name), nil
	}
	if outputDir == "" {
		return inp, nil
	}
	return filepath.Join(outputDir, filepath.Base(inp)), nil
}

// Confirm returns <jobs> with the ones user refused to overwrite existing output of marked as skipped.
//
// Asks through <in> and <out> about every existing output which is not the input itself. If <yes> is true, asks
// nothing.
func (r repo) Confirm(jobs []Job, yes bool, in io.Reader, out io.Writer) []Job {
	jobs = slices.Clone(jobs)
	if yes {
		return jobs
	}
	br := bufio.NewReader(in)
	for i, job := range jobs {
		if job.Output == job.Input || !file.Exists(job.Output) {
			continue
		}
		prompt := r.msg.Text(r.msg.Overwrite, "output", job.Output)
		jobs[i].Skip = !input.AskYesNo(r.log, br, out, prompt, false)
	}
	return jobs
}

// Load returns configuration document read from local file or URL <inp>
func (r repo) Load(inp string) (*yamlfile.Config, error) {
	rc, err := network.Open(r.client, inp)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	c := yamlfile.New(options(r))
	if err := c.Load(rc); err != nil {
		return nil, errors.Wrapf(err, "Load %v", inp)
	}
	return c, nil
}

// Apply applies <edits> to <c> and sets header from settings if it is not empty.
//
// Values are set before comments, in order of their paths.
func (r repo) Apply(c *yamlfile.Config, edits Edits) error {
	for _, path := range sortedKeys(edits.Set) {
		var value any
		if err := yaml.Unmarshal([]byte(edits.Set[path]), &value); err != nil {
			value = edits.Set[path]
		}
		r.log.Debugf("Setting %v to %v", path, value)
		c.Path(path).Set(value)
	}
	for _, path := range sortedKeys(edits.Comment) {
		if !c.Has(path) {
			return errors.Wrap(PathNotFoundError{Path: path}, "Set comment")
		}
		c.Path(path).Comment(edits.Comment[path])
	}
	if header := r.set.Format.Header; header != "" {
		c.SetHeader(header)
	}
	return nil
}

// Process loads input of <job>, applies <edits> and writes result to output of <job> if it differs from the existing
// output.
func (r repo) Process(job Job, edits Edits) Outcome {
	if job.Skip {
		return Outcome{Job: job, Result: Skipped}
	}
	c, err := r.Load(job.Input)
	if err != nil {
		return Outcome{Job: job, Result: Failed, Err: err}
	}
	if err := r.Apply(c, edits); err != nil {
		return Outcome{Job: job, Result: Failed, Err: err}
	}
	text, err := c.SaveToString()
	if err != nil {
		return Outcome{Job: job, Result: Failed, Err: errors.Wrapf(err, "Encode %v", job.Input)}
	}
	if old, err := os.ReadFile(job.Output); err == nil && string(old) == text {
		return Outcome{Job: job, Result: Unchanged}
	}
	if err := os.MkdirAll(filepath.Dir(job.Output), 0755); err != nil {
		return Outcome{Job: job, Result: Failed, Err: errors.Wrap(err, "Create output directory")}
	}
	if err := os.WriteFile(job.Output, []byte(text), 0644); err != nil {
		return Outcome{Job: job, Result: Failed, Err: errors.Wrap(err, "Write output")}
	}
	return Outcome{Job: job, Result: Written}
}

// Check returns Valid outcome if <inp> is a valid single YAML document with mapping at the top level
func (r repo) Check(inp string) Outcome {
	job := Job{Input: inp}
	rc, err := network.Open(r.client, inp)
	if err != nil {
		return Outcome{Job: job, Result: Failed, Err: err}
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Outcome{Job: job, Result: Failed, Err: errors.Wrapf(err, "Read %v", inp)}
	}
	if err := yamlfile.Validate(data, !color.NoColor); err != nil {
		return Outcome{Job: job, Result: Invalid, Err: err}
	}
	// Syntax is fine but values could still be of a wrong shape
	if err := yamlfile.New(options(r)).Load(bytes.NewReader(data)); err != nil {
		return Outcome{Job: job, Result: Invalid, Err: err}
	}
	return Outcome{Job: job, Result: Valid}
}

// Run processes <jobs> with <edits> in a pool of workers, returning outcomes in order of <jobs>
func (r repo) Run(jobs []Job, edits Edits) []Outcome {
	return r.each(len(jobs), func(i int) Outcome {
		r.log.Debugf("Processing %v", jobs[i].Input)
		return r.Process(jobs[i], edits)
	})
}

// CheckAll checks <inputs> in a pool of workers, returning outcomes in order of <inputs>
func (r repo) CheckAll(inputs []string) []Outcome {
	return r.each(len(inputs), func(i int) Outcome {
		return r.Check(inputs[i])
	})
}

// each returns outcomes of <fn> called for every index below <n>, at most general.workers at the same time
func (r repo) each(n int, fn func(i int) Outcome) []Outcome {
	out := make([]Outcome, n)
	pool := pond.New(r.set.General.Workers, 0, pond.MinWorkers(0))
	for i := range out {
		i := i
		pool.Submit(func() {
			out[i] = fn(i)
		})
	}
	pool.StopAndWait()
	return out
}

// Report logs every outcome of <outcomes> with a table of failed ones and a summary. Returns amount of failed and
// invalid outcomes.
func (r repo) Report(outcomes []Outcome) int {
	r.tw.AppendHeader(table.Row{"Input", "Result", "Reason"})
	for _, o := range outcomes {
		switch o.Result {
		case Written:
			r.log.Info(r.msg.Text(r.msg.Written, "output", o.Job.Output))
		case Unchanged:
			r.log.Info(r.msg.Text(r.msg.Unchanged, "output", o.Job.Output))
		case Skipped:
			r.log.Info(r.msg.Text(r.msg.Skipped, "output", o.Job.Output))
		case Valid:
			r.log.Info(r.msg.Text(r.msg.Valid, "input", o.Job.Input))
		case Invalid:
			r.log.Error(r.msg.Text(r.msg.Invalid, "input", o.Job.Input, "reason", o.Err))
			r.tw.AppendRow(table.Row{o.Job.Input, o.Result, reason(o.Err)})
		case Failed:
			r.log.Error(r.msg.Text(r.msg.Failed, "input", o.Job.Input, "reason", reason(o.Err)))
			r.tw.AppendRow(table.Row{o.Job.Input, o.Result, reason(o.Err)})
		}
	}
	r.tw.Render()

	counts := lo.CountValuesBy(outcomes, func(o Outcome) Result { return o.Result })
	if counts[Valid]+counts[Invalid] == 0 {
		r.log.Info(r.msg.Text(r.msg.Summary, "total", len(outcomes), "written", counts[Written],
			"unchanged", counts[Unchanged], "skipped", counts[Skipped], "failed", counts[Failed]))
	}
	return counts[Failed] + counts[Invalid]
}

// reason returns short description of <err>, naming network error type if it is known
func reason(err error) string {
	errType := network.GetErrType(err)
	return lo.Ternary(errType == network.Unknown || errType == network.Nil, fmt.Sprint(err), string(errType))
}

// options returns document options built from format settings of <r>
func options(r deps.Global) yamlfile.Options {
	format := r.Settings().Format
	opts := yamlfile.DefaultOptions()
	opts.Indent = format.Indent
	opts.PathSeparator = format.PathSeparator
	opts.CommentFormat = format.CommentFormat
	opts.Header = format.Header
	return opts
}

// sortedKeys returns keys of <m> in ascending order
func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
