package main

import (
	"fmt"
	"os"

	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-go/difficulty/server"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
	"github.com/kiteco/difficulty/kite-golib/envutil"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envModelDir = "DIFFICULTY_MODEL_DIR"
	envDataPath = "DIFFICULTY_DATA_PATH"
	envPort     = "DIFFICULTY_PORT"
)

var (
	defaultModelDir = envutil.GetenvDefault(envModelDir, "models")
	defaultDataPath = envutil.GetenvDefault(envDataPath, "data/dataset.csv")
)

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		return kitelog.New(kitelog.Options{Development: true})
	}
	return kitelog.New(kitelog.Options{Level: zapcore.InfoLevel})
}

// ServingArgs holds what the serve and predict commands both need.
type ServingArgs struct {
	Models     string `arg:"--models" help:"bundle store directory (env DIFFICULTY_MODEL_DIR)"`
	Run        string `arg:"--run" help:"run to load instead of the one named by CURRENT"`
	Thresholds string `arg:"--thresholds" help:"YAML tier thresholds, defaults to the built-in tiers"`
}

func (s ServingArgs) load(logger *zap.Logger) (*text.Normalizer, tier.Thresholds, error) {
	thresholds, err := tier.LoadThresholds(afero.NewOsFs(), s.Thresholds)
	if err != nil {
		return nil, tier.Thresholds{}, err
	}
	logger.Info("using tier thresholds", zap.String("version", thresholds.Version))
	return text.NewNormalizer(), thresholds, nil
}

func (s ServingArgs) openBundle(normalizer string) (*bundle.Bundle, error) {
	store := bundle.NewStore(afero.NewOsFs(), s.Models)
	if s.Run != "" {
		return store.LoadRun(s.Run, normalizer)
	}
	return store.Load(normalizer)
}

func main() {
	port, err := envutil.GetenvDefaultInt(envPort, server.DefaultPort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cmdline.MustDispatch(
		trainCmd,
		newServeCmd(port),
		predictCmd,
		relabelCmd,
		runsCmd,
	)
}
