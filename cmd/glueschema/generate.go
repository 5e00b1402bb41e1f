package main

import (
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type generateArguments struct {
	OutputDir string
}

func generateCommand(args *arguments) *cli.Command {
	var genArgs generateArguments

	return &cli.Command{
		Name:  "generate",
		Usage: "Generate schema artifact files from a record descriptor",
		Action: func(c *cli.Context) error {
			return generateAction(*args, genArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"o"},
				Usage:       "Directory to write artifact files",
				Value:       ".",
				Destination: &genArgs.OutputDir,
			},
		},
	}
}

func generateAction(args arguments, genArgs generateArguments) error {
	table, err := args.generate()
	if err != nil {
		return err
	}

	artifacts := map[string]string{}
	if table.GlueSchema != "" {
		artifacts[table.TableName+".glue.json"] = table.GlueSchema
	}
	if table.ParquetSchema != "" {
		artifacts[table.TableName+".parquet.txt"] = table.ParquetSchema + "\n"
	}

	for fname, body := range artifacts {
		fpath := filepath.Join(genArgs.OutputDir, fname)
		if err := ioutil.WriteFile(fpath, []byte(body), 0644); err != nil {
			return errors.Wrapf(err, "Fail to write artifact: %s", fpath)
		}
		logger.WithField("path", fpath).Info("Wrote artifact")
	}

	return nil
}
