package main

import (
	"os"

	"github.com/m-mizutani/gasession/internal"
	cli "github.com/urfave/cli/v2"
)

var logger = internal.Logger

type arguments struct {
	LogLevel string
}

func main() {
	var args arguments

	app := &cli.App{
		Name:  "gasession",
		Usage: "Build session records from Google Analytics hits",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "Log level [TRACE|DEBUG|INFO|WARN|ERROR]",
				Value:       "INFO",
				EnvVars:     []string{"LOG_LEVEL"},
				Destination: &args.LogLevel,
			},
		},
		Before: func(c *cli.Context) error {
			internal.SetLogLevel(args.LogLevel)
			internal.InitErrorHandler()
			return nil
		},
		Commands: []*cli.Command{
			runCommand(&args),
			dumpCommand(&args),
			summaryCommand(&args),
		},
	}

	err := app.Run(os.Args)
	internal.FlushError()
	if err != nil {
		logger.WithError(err).Fatal("Abort")
	}
}
