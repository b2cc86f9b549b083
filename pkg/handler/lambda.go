package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/m-mizutani/gasession/internal"
	"github.com/m-mizutani/gasession/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is common logger gateway
var Logger = internal.Logger

// Handler has main logic of the lambda function
type Handler func(ctx context.Context, args Arguments) error

// StartLambda initialize AWS Lambda and invokes handler
func StartLambda(handler Handler) {
	Logger.SetLevel(logrus.InfoLevel)
	internal.SetJSONFormatter()
	internal.InitErrorHandler()

	lambda.Start(func(ctx context.Context, event interface{}) error {
		defer internal.FlushError()

		args, err := NewArguments(event)
		if err != nil {
			internal.HandleError(err)
			return err
		}

		Logger.WithFields(logrus.Fields{"args": args, "event": event}).Debug("Start handler")

		if err := handler(ctx, *args); err != nil {
			Logger.WithFields(logrus.Fields{"args": args, "event": event}).Error("Failed Handler")
			err = errors.Wrap(err, "Failed Handler")
			internal.HandleError(err)
			return err
		}

		return nil
	})
}

// NewArguments binds environment variables and loads config file.
func NewArguments(event interface{}) (*Arguments, error) {
	args := &Arguments{Event: event}
	if err := args.BindEnvVars(); err != nil {
		return nil, err
	}

	SetLogLevel(args.LogLevel)

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	args.Config = cfg

	return args, nil
}

// SetLogLevel changes log level if level is not empty.
func SetLogLevel(level string) {
	if level != "" {
		internal.SetLogLevel(level)
	}
}
