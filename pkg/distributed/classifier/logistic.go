// Package classifier marshals classifier training jobs for the distributed
// execution service. It owns parameter defaults and validation; the training
// itself always happens on the cluster.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"periscope/pkg/distributed"
)

// ModelLogisticRegression is the engine's name for the logistic regression
// classifier.
const ModelLogisticRegression = "classifier_logistic_regression"

// MetricSubmitTrainingJob is the usage event recorded once per submission
// attempt.
const MetricSubmitTrainingJob = "distributed.classifier.logistic.submit_training_job"

// Solvers accepted by the engine. Auto lets the engine choose from the data;
// fista is the one that handles an l1 penalty.
const (
	SolverAuto   = "auto"
	SolverNewton = "newton"
	SolverLBFGS  = "lbfgs"
	SolverFISTA  = "fista"
)

// Engine defaults for solver options. An explicit zero l1 or l2 penalty is
// meaningful (unregularized training), so defaults are applied by
// NewTrainingSpec rather than at marshalling time.
const (
	DefaultL2Penalty            = 0.01
	DefaultL1Penalty            = 0.0
	DefaultConvergenceThreshold = 1e-2
	DefaultStepSize             = 1.0
	DefaultLBFGSMemoryLevel     = 11
	DefaultMaxIterations        = 10
)

var (
	ErrNoDataset  = errors.New("classifier: dataset is required")
	ErrNoTarget   = errors.New("classifier: target column is required")
	ErrNilCluster = errors.New("classifier: nil cluster")
)

// Tracker records client-side usage events. A nil Tracker disables tracking.
type Tracker interface {
	Track(event string)
}

// TrainingSpec is the full parameter surface of a logistic classifier
// training job. Construct it with NewTrainingSpec so the engine defaults are
// in place, then override individual fields; decoding YAML over a fresh spec
// keeps the defaults for keys the document omits.
type TrainingSpec struct {
	Dataset              string        `yaml:"dataset"`
	Target               string        `yaml:"target"`
	Features             []string      `yaml:"features,omitempty"`
	L2Penalty            float64       `yaml:"l2_penalty"`
	L1Penalty            float64       `yaml:"l1_penalty"`
	Solver               string        `yaml:"solver"`
	FeatureRescaling     bool          `yaml:"feature_rescaling"`
	ConvergenceThreshold float64       `yaml:"convergence_threshold"`
	StepSize             float64       `yaml:"step_size"`
	LBFGSMemoryLevel     int           `yaml:"lbfgs_memory_level"`
	MaxIterations        int           `yaml:"max_iterations"`
	ClassWeights         *ClassWeights `yaml:"class_weights,omitempty"`
	ValidationSet        string        `yaml:"validation_set,omitempty"`
}

// NewTrainingSpec creates a spec for dataset and target with the engine's
// default solver options.
func NewTrainingSpec(dataset, target string) TrainingSpec {
	return TrainingSpec{
		Dataset:              dataset,
		Target:               target,
		L2Penalty:            DefaultL2Penalty,
		L1Penalty:            DefaultL1Penalty,
		Solver:               SolverAuto,
		FeatureRescaling:     true,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		StepSize:             DefaultStepSize,
		LBFGSMemoryLevel:     DefaultLBFGSMemoryLevel,
		MaxIterations:        DefaultMaxIterations,
	}
}

// Validate checks the spec against the engine's parameter constraints. An
// empty solver is treated as auto.
func (s TrainingSpec) Validate() error {
	if strings.TrimSpace(s.Dataset) == "" {
		return ErrNoDataset
	}
	if strings.TrimSpace(s.Target) == "" {
		return ErrNoTarget
	}
	switch strings.ToLower(s.Solver) {
	case "", SolverAuto, SolverNewton, SolverLBFGS, SolverFISTA:
	default:
		return fmt.Errorf("classifier: unknown solver %q", s.Solver)
	}
	if s.L2Penalty < 0 {
		return fmt.Errorf("classifier: negative l2_penalty %g", s.L2Penalty)
	}
	if s.L1Penalty < 0 {
		return fmt.Errorf("classifier: negative l1_penalty %g", s.L1Penalty)
	}
	if s.ConvergenceThreshold <= 0 {
		return fmt.Errorf("classifier: convergence_threshold must be positive, got %g", s.ConvergenceThreshold)
	}
	if s.StepSize <= 0 {
		return fmt.Errorf("classifier: step_size must be positive, got %g", s.StepSize)
	}
	if s.LBFGSMemoryLevel <= 0 {
		return fmt.Errorf("classifier: lbfgs_memory_level must be positive, got %d", s.LBFGSMemoryLevel)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("classifier: max_iterations must be positive, got %d", s.MaxIterations)
	}
	if s.ClassWeights != nil {
		if err := s.ClassWeights.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Request marshals the spec into the engine's submission form. Solver names
// are lowercased on the way out; the returned request carries a fresh
// client-generated submission ID.
func (s TrainingSpec) Request() (distributed.JobRequest, error) {
	if err := s.Validate(); err != nil {
		return distributed.JobRequest{}, err
	}
	solver := strings.ToLower(s.Solver)
	if solver == "" {
		solver = SolverAuto
	}
	options := map[string]any{
		"l2_penalty":            s.L2Penalty,
		"l1_penalty":            s.L1Penalty,
		"solver":                solver,
		"feature_rescaling":     s.FeatureRescaling,
		"convergence_threshold": s.ConvergenceThreshold,
		"step_size":             s.StepSize,
		"lbfgs_memory_level":    s.LBFGSMemoryLevel,
		"max_iterations":        s.MaxIterations,
	}
	if s.ClassWeights != nil {
		options["class_weights"] = s.ClassWeights.engineValue()
	}
	return distributed.JobRequest{
		ID:            uuid.NewString(),
		Model:         ModelLogisticRegression,
		Dataset:       s.Dataset,
		Target:        s.Target,
		Features:      s.Features,
		ValidationSet: s.ValidationSet,
		Options:       options,
	}, nil
}

// SubmitTrainingJob marshals spec and hands it to the cluster, returning the
// job handle for tracking. The submission attempt is tracked before
// validation, matching how usage is counted engine-side.
func SubmitTrainingJob(ctx context.Context, c distributed.Cluster, tr Tracker, spec TrainingSpec) (*distributed.Job, error) {
	if c == nil {
		return nil, ErrNilCluster
	}
	if tr != nil {
		tr.Track(MetricSubmitTrainingJob)
	}
	req, err := spec.Request()
	if err != nil {
		return nil, err
	}
	return c.Submit(ctx, req)
}

// ClassWeights weights training examples per class: either the engine's auto
// mode, which derives weights from inverse class frequency, or an explicit
// class to weight mapping. Exactly one of the two forms is set.
type ClassWeights struct {
	Auto    bool
	Weights map[string]float64
}

// AutoClassWeights returns the auto form.
func AutoClassWeights() *ClassWeights {
	return &ClassWeights{Auto: true}
}

// ExplicitClassWeights returns the mapping form.
func ExplicitClassWeights(weights map[string]float64) *ClassWeights {
	return &ClassWeights{Weights: weights}
}

// UnmarshalYAML accepts either the scalar "auto" or a class to weight
// mapping.
func (w *ClassWeights) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s != "auto" {
			return fmt.Errorf("classifier: class_weights must be \"auto\" or a mapping, got %q", s)
		}
		*w = ClassWeights{Auto: true}
		return nil
	case yaml.MappingNode:
		weights := map[string]float64{}
		if err := value.Decode(&weights); err != nil {
			return err
		}
		*w = ClassWeights{Weights: weights}
		return nil
	default:
		return errors.New("classifier: class_weights must be \"auto\" or a mapping")
	}
}

// engineValue is the form shipped in the request options.
func (w *ClassWeights) engineValue() any {
	if w.Auto {
		return "auto"
	}
	return w.Weights
}

func (w *ClassWeights) validate() error {
	if w.Auto {
		if len(w.Weights) > 0 {
			return errors.New("classifier: class_weights cannot be both auto and explicit")
		}
		return nil
	}
	if len(w.Weights) == 0 {
		return errors.New("classifier: class_weights mapping is empty")
	}
	for class, weight := range w.Weights {
		if weight <= 0 {
			return fmt.Errorf("classifier: class %q weight must be positive, got %g", class, weight)
		}
	}
	return nil
}
