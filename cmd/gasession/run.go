package main

import (
	"context"
	"time"

	"github.com/m-mizutani/gasession/internal"
	"github.com/m-mizutani/gasession/internal/config"
	"github.com/m-mizutani/gasession/pkg/handler"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/m-mizutani/gasession/pkg/sessionizer"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type runArguments struct {
	configPath string
	date       string
}

func runCommand(args *arguments) *cli.Command {
	var runArgs runArguments

	return &cli.Command{
		Name:  "run",
		Usage: "Sessionize hits of a day",
		Action: func(c *cli.Context) error {
			return runAction(c.Context, *args, runArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Config file path",
				Required:    true,
				EnvVars:     []string{"CONFIG_PATH"},
				Destination: &runArgs.configPath,
			},
			&cli.StringFlag{
				Name:        "date",
				Aliases:     []string{"d"},
				Usage:       "Target date (YYYY-MM-DD), yesterday by default",
				Destination: &runArgs.date,
			},
		},
	}
}

func parseDate(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return now.UTC().AddDate(0, 0, -1), nil
	}

	t, err := time.Parse(models.DateFormat, date)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "Fail to parse date: %s", date)
	}
	return t, nil
}

func runAction(ctx context.Context, args arguments, runArgs runArguments) error {
	if ctx == nil {
		ctx = context.Background()
	}

	date, err := parseDate(runArgs.date, time.Now())
	if err != nil {
		return err
	}

	cfg, err := config.Load(runArgs.configPath)
	if err != nil {
		return err
	}

	job, err := sessionizer.New(ctx, handler.Arguments{
		EnvVars: handler.EnvVars{ConfigPath: runArgs.configPath, LogLevel: args.LogLevel},
		Config:  cfg,
	}, date)
	if err != nil {
		return err
	}

	if err := job.Execute(ctx); err != nil {
		internal.HandleError(err)
		return err
	}

	logger.WithField("queue", job.Queue()).Info("Done")
	return nil
}
