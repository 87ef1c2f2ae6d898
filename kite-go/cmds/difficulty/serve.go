package main

import (
	"fmt"

	"github.com/kiteco/difficulty/kite-go/difficulty/inference"
	"github.com/kiteco/difficulty/kite-go/difficulty/server"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"go.uber.org/zap"
)

func newServeCmd(port int) cmdline.Command {
	return cmdline.Command{
		Name:     "serve",
		Synopsis: "serve predictions from the current bundle over HTTP",
		Args: &serveArgs{
			ServingArgs: ServingArgs{Models: defaultModelDir},
			Port:        port,
		},
	}
}

type serveArgs struct {
	ServingArgs
	Port    int  `arg:"--port" help:"listen port (env DIFFICULTY_PORT)"`
	Verbose bool `arg:"-v,--verbose"`
}

func (args *serveArgs) Validate() error {
	if args.Port <= 0 || args.Port > 65535 {
		return errors.Errorf("--port must be a valid TCP port, got %d", args.Port)
	}
	return nil
}

func (args *serveArgs) Handle() error {
	logger := newLogger(args.Verbose)
	defer logger.Sync()

	normalizer, thresholds, err := args.load(logger)
	if err != nil {
		return err
	}

	// a server without models still starts and answers 503
	var service *inference.Service
	b, err := args.openBundle(normalizer.Version())
	if err != nil {
		logger.Error("error loading models, predictions are unavailable", zap.String("dir", args.Models), zap.Error(err))
	} else {
		b.CheckThresholds(thresholds.Version, logger)
		if service, err = inference.New(b, thresholds, normalizer); err != nil {
			return err
		}
		logger.Info("loaded bundle", kitelog.RunID(b.Manifest.RunID), kitelog.Features(b.Vectorizer.Size()))
		if b.Manifest.Synthetic {
			logger.Warn("SYNTHETIC DATA: serving models trained on a placeholder corpus", kitelog.RunID(b.Manifest.RunID))
		}
	}

	return server.New(service, logger).ListenAndServe(fmt.Sprintf(":%d", args.Port))
}
