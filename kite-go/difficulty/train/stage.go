package train

import (
	"fmt"
	"time"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"go.uber.org/zap"
)

// Stage is a step of a training run. Stages run strictly in order.
type Stage int

// Stages of a training run.
const (
	StageStart Stage = iota
	StageLoad
	StageClean
	StageVectorize
	StageFitEncoder
	StageSplit
	StageFitRegressor
	StageFitClassifier
	StageEvaluate
	StagePersist
	StageDone
)

var stageNames = map[Stage]string{
	StageStart:         "Start",
	StageLoad:          "Load",
	StageClean:         "Clean",
	StageVectorize:     "Vectorize",
	StageFitEncoder:    "FitEncoder",
	StageSplit:         "Split",
	StageFitRegressor:  "FitRegressor",
	StageFitClassifier: "FitClassifier",
	StageEvaluate:      "Evaluate",
	StagePersist:       "Persist",
	StageDone:          "Done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// StageError is a failure of one stage. It aborts the run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("training failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// machine tracks the current stage and times each one.
type machine struct {
	stage     Stage
	started   time.Time
	durations kitelog.Durations
	logger    *zap.Logger
}

func newMachine(logger *zap.Logger) *machine {
	return &machine{stage: StageStart, logger: logger}
}

// enter moves to the next stage. Skipping or repeating a stage is an error.
func (m *machine) enter(next Stage) error {
	if next != m.stage+1 {
		return errors.Errorf("invalid stage transition %s -> %s", m.stage, next)
	}
	m.finish()
	m.stage = next
	m.started = time.Now()
	m.logger.Info("entering stage", kitelog.Phase(next.String()))
	return nil
}

func (m *machine) finish() {
	if m.stage != StageStart && m.stage != StageDone {
		m.durations.Record(m.stage.String(), time.Since(m.started))
	}
}

// fail wraps err with the current stage.
func (m *machine) fail(err error) error {
	m.finish()
	m.logger.Error("stage failed", kitelog.Phase(m.stage.String()), zap.Error(err))
	return &StageError{Stage: m.stage, Err: err}
}
