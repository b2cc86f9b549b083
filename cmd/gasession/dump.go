package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type dumpArguments struct {
	files  cli.StringSlice
	format string
	pretty bool
}

func dumpCommand(args *arguments) *cli.Command {
	var dumpArgs dumpArguments

	return &cli.Command{
		Name:  "dump",
		Usage: "Print session records of local output files",
		Action: func(c *cli.Context) error {
			return dumpAction(*args, dumpArgs)
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Output file path (jsonl.gz or msg.gz)",
				Required:    true,
				Destination: &dumpArgs.files,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Record format [json|msgpack], guessed by extension if empty",
				Destination: &dumpArgs.format,
			},
			&cli.BoolFlag{
				Name:        "pretty",
				Aliases:     []string{"p"},
				Usage:       "Pretty print records",
				Destination: &dumpArgs.pretty,
			},
		},
	}
}

func guessFormat(filePath string) string {
	if strings.HasSuffix(filePath, ".msg.gz") || strings.HasSuffix(filePath, ".msg") {
		return adaptor.FormatMsgpack
	}
	return adaptor.FormatJSON
}

func dumpAction(args arguments, dumpArgs dumpArguments) error {
	for _, filePath := range dumpArgs.files.Value() {
		if err := dumpRecordFile(filePath, dumpArgs); err != nil {
			return err
		}
	}

	return nil
}

func dumpRecordFile(filePath string, dumpArgs dumpArguments) error {
	format := dumpArgs.format
	if format == "" {
		format = guessFormat(filePath)
	}

	_, newDecoder, err := adaptor.LookupFormat(format)
	if err != nil {
		return err
	}

	fd, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "Fail to open: %s", filePath)
	}

	svc := service.NewRecordService(nil, nil, newDecoder)
	ch := make(chan *models.SessionRecord, 128)
	errCh := make(chan error, 1)
	go func() {
		defer close(ch)
		errCh <- svc.Read(fd, ch)
	}()

	for record := range ch {
		if err := printRecord(record, dumpArgs.pretty); err != nil {
			return err
		}
	}

	return <-errCh
}

func printRecord(v interface{}, pretty bool) error {
	if pretty {
		pp.Println(v)
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "Fail to marshal record")
	}
	fmt.Println(string(raw))
	return nil
}
