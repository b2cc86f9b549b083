package pipeline

import (
	"context"

	"github.com/m-mizutani/gasession/internal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// Step is a unit of Pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs PreChecks, Transform and PostActions in sequence.
// PostActions always run even if PreChecks or Transform failed.
type Pipeline struct {
	PreChecks   []Step
	Transform   []Step
	PostActions []Step

	// Failed is set before PostActions run if PreChecks or Transform failed.
	Failed bool
}

func runSteps(ctx context.Context, stage string, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "Canceled before %s/%s", stage, step.Name)
		}

		log := logger.WithFields(logrus.Fields{"stage": stage, "step": step.Name})
		log.Debug("Start step")

		if err := step.Run(ctx); err != nil {
			log.WithError(err).Error("Fail step")
			return errors.Wrapf(err, "Fail %s/%s", stage, step.Name)
		}
	}

	return nil
}

// Execute runs the pipeline. The first error of PreChecks or Transform is
// returned. Errors of PostActions are logged and the remaining actions still
// run.
func (x *Pipeline) Execute(ctx context.Context) error {
	err := runSteps(ctx, "precheck", x.PreChecks)
	if err == nil {
		err = runSteps(ctx, "transform", x.Transform)
	}
	x.Failed = err != nil

	// PostActions use a context that is not canceled with ctx.
	postCtx := context.Background()
	for _, action := range x.PostActions {
		if actionErr := action.Run(postCtx); actionErr != nil {
			logger.WithError(actionErr).WithField("step", action.Name).Error("Fail post action")
			if err == nil {
				internal.HandleError(errors.Wrapf(actionErr, "Fail postaction/%s", action.Name))
			}
		}
	}

	return err
}
