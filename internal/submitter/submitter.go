// Package submitter drives the command line flow: load the cluster config
// and the job file, submit the job, then optionally follow its event stream.
package submitter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"periscope/internal/metrics"
	"periscope/pkg/color"
	"periscope/pkg/distributed"
	"periscope/pkg/distributed/classifier"
)

// KindLogisticClassifier is the only job kind this build knows how to submit.
const KindLogisticClassifier = "logistic_classifier"

type Submitter struct {
	Help          bool   // Show help message
	Verbose       bool   // Enable verbose output
	Follow        bool   // Follow the job's event stream after submission
	NoColor       bool   // Disable colored output
	ClusterConfig string // Path to the cluster config file
	JobFile       string // Path to the job file
}

// jobFile is the on-disk YAML form of one submission: a kind discriminator
// with the training spec fields inlined beside it.
type jobFile struct {
	Kind string                  `yaml:"kind"`
	Spec classifier.TrainingSpec `yaml:",inline"`
}

// Run loads the cluster config and the job file, submits the job and prints
// its handle. With Follow set it stays on the event stream until the job
// reaches a terminal state.
func (opts *Submitter) Run() error {
	log.Info("Processing job file", "file", opts.JobFile)

	cfg, err := distributed.LoadConfig(opts.ClusterConfig)
	if err != nil {
		return err
	}

	spec, err := loadJobFile(opts.JobFile)
	if err != nil {
		return err
	}

	cluster, err := distributed.NewHTTPCluster(cfg)
	if err != nil {
		return err
	}

	usage := metrics.NewRegistry()
	ctx := context.Background()

	log.Debug("Submitting job", "cluster", cfg.Name, "endpoint", cfg.Endpoint, "model", classifier.ModelLogisticRegression)
	job, err := classifier.SubmitTrainingJob(ctx, cluster, usage, spec)
	if err != nil {
		return err
	}

	fmt.Println(color.GreenText("=== Job Submitted ==="))
	fmt.Printf("%s: %s\n", color.CyanText("id"), job.ID)
	fmt.Printf("%s: %s\n", color.CyanText("model"), job.Model)
	fmt.Printf("%s: %s\n", color.CyanText("state"), stateText(job.State))

	for event, n := range usage.Snapshot() {
		log.Debug("Tracked usage", "event", event, "count", n)
	}

	if !opts.Follow {
		return nil
	}
	return follow(ctx, cluster, job.ID)
}

func follow(ctx context.Context, cluster distributed.Cluster, jobID string) error {
	log.Debug("Watching job events", "job", jobID)
	events, err := cluster.Watch(ctx, jobID)
	if err != nil {
		return err
	}

	fmt.Println(color.GreenText("=== Job Events ==="))
	last := distributed.StatePending
	for ev := range events {
		last = ev.State
		line := stateText(ev.State)
		if ev.Progress > 0 {
			line += fmt.Sprintf(" %3.0f%%", ev.Progress*100)
		}
		if ev.Message != "" {
			line += " " + color.GrayText(ev.Message)
		}
		fmt.Println(line)
	}

	switch last {
	case distributed.StateFailed:
		return fmt.Errorf("job %s failed", jobID)
	case distributed.StateCanceled:
		return fmt.Errorf("job %s was canceled", jobID)
	}
	return nil
}

func loadJobFile(path string) (classifier.TrainingSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return classifier.TrainingSpec{}, fmt.Errorf("read job file: %w", err)
	}

	// Decode over a defaulted spec so omitted keys keep engine defaults.
	jf := jobFile{Spec: classifier.NewTrainingSpec("", "")}
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return classifier.TrainingSpec{}, fmt.Errorf("parse job file: %w", err)
	}

	switch strings.TrimSpace(jf.Kind) {
	case "":
		return classifier.TrainingSpec{}, fmt.Errorf("job file %s has no kind", path)
	case KindLogisticClassifier:
	default:
		return classifier.TrainingSpec{}, fmt.Errorf("unsupported job kind %q", jf.Kind)
	}
	return jf.Spec, nil
}

func stateText(state distributed.JobState) string {
	switch state {
	case distributed.StateCompleted:
		return color.GreenText(state.String())
	case distributed.StateFailed, distributed.StateCanceled:
		return color.RedText(state.String())
	default:
		return color.YellowText(state.String())
	}
}
