package main

import (
	"encoding/json"
	"os"

	"github.com/kiteco/difficulty/kite-go/difficulty/corpus"
	"github.com/kiteco/difficulty/kite-go/difficulty/inference"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
)

var predictCmd = cmdline.Command{
	Name:     "predict",
	Synopsis: "score one problem with the current bundle",
	Args: &predictArgs{
		ServingArgs: ServingArgs{Models: defaultModelDir},
	},
}

type predictArgs struct {
	ServingArgs
	Title       string `arg:"--title"`
	Description string `arg:"--description,-d"`
	Input       string `arg:"--input,-i" help:"input format description"`
	Output      string `arg:"--output,-o" help:"output format description"`
	Verbose     bool   `arg:"-v,--verbose"`
}

func (args *predictArgs) Handle() error {
	logger := newLogger(args.Verbose)
	defer logger.Sync()

	normalizer, thresholds, err := args.load(logger)
	if err != nil {
		return err
	}
	b, err := args.openBundle(normalizer.Version())
	if err != nil {
		return err
	}
	b.CheckThresholds(thresholds.Version, logger)

	service, err := inference.New(b, thresholds, normalizer)
	if err != nil {
		return err
	}
	p, err := service.Score(corpus.Problem{
		Title:             args.Title,
		Description:       args.Description,
		InputDescription:  args.Input,
		OutputDescription: args.Output,
	})
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(p)
}
