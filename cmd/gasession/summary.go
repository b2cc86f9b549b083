package main

import (
	"github.com/m-mizutani/gasession/internal/service"
	cli "github.com/urfave/cli/v2"
)

type summaryArguments struct {
	files  cli.StringSlice
	pretty bool
}

func summaryCommand(args *arguments) *cli.Command {
	var summaryArgs summaryArguments

	return &cli.Command{
		Name:  "summary",
		Usage: "Print rows of local session summary parquet files",
		Action: func(c *cli.Context) error {
			return summaryAction(*args, summaryArgs)
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Summary parquet file path",
				Required:    true,
				Destination: &summaryArgs.files,
			},
			&cli.BoolFlag{
				Name:        "pretty",
				Aliases:     []string{"p"},
				Usage:       "Pretty print rows",
				Destination: &summaryArgs.pretty,
			},
		},
	}
}

func summaryAction(args arguments, summaryArgs summaryArguments) error {
	for _, filePath := range summaryArgs.files.Value() {
		rows, err := service.ReadSummaryFile(filePath)
		if err != nil {
			return err
		}

		for i := range rows {
			if err := printRecord(&rows[i], summaryArgs.pretty); err != nil {
				return err
			}
		}
	}

	return nil
}
