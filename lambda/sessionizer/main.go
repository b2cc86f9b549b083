package main

import (
	"context"

	"github.com/m-mizutani/gasession/pkg/handler"
	"github.com/m-mizutani/gasession/pkg/sessionizer"
)

var logger = handler.Logger

func main() {
	handler.StartLambda(Handler)
}

// Handler is exported for testing
func Handler(ctx context.Context, args handler.Arguments) error {
	date, err := args.TargetDate()
	if err != nil {
		return err
	}

	job, err := sessionizer.New(ctx, args, date)
	if err != nil {
		return err
	}

	if err := job.Execute(ctx); err != nil {
		return err
	}

	logger.WithField("queue", job.Queue()).Info("Done sessionize")
	return nil
}
