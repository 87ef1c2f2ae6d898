package kitelog

import "go.uber.org/zap"

// Structured keys shared by the training and serving logs.
const (
	KeyOperation = "ml.operation"
	KeyPhase     = "ml.phase"
	KeySamples   = "data.samples"
	KeyFeatures  = "data.features"
	KeyModel     = "model.name"
	KeyRunID     = "model.run_id"
)

// Operation tags a log line with the pipeline operation, e.g. train or predict.
func Operation(op string) zap.Field { return zap.String(KeyOperation, op) }

// Phase tags a log line with the stage within an operation.
func Phase(phase string) zap.Field { return zap.String(KeyPhase, phase) }

// Samples records a row count.
func Samples(n int) zap.Field { return zap.Int(KeySamples, n) }

// Features records a feature vector width.
func Features(n int) zap.Field { return zap.Int(KeyFeatures, n) }

// Model names the model a line is about.
func Model(name string) zap.Field { return zap.String(KeyModel, name) }

// RunID records the artifact bundle a line is about.
func RunID(id string) zap.Field { return zap.String(KeyRunID, id) }
