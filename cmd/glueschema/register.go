package main

import (
	cli "github.com/urfave/cli/v2"

	"github.com/m-mizutani/glueschema/internal/adaptor"
	"github.com/m-mizutani/glueschema/pkg/catalog"
)

type registerArguments struct {
	Region     string
	DBName     string
	OutputPath string
	Location   string
}

func registerCommand(args *arguments) *cli.Command {
	var regArgs registerArguments

	return &cli.Command{
		Name:  "register",
		Usage: "Create the table of a record descriptor on the metadata catalog",
		Action: func(c *cli.Context) error {
			return registerAction(*args, regArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "region",
				Aliases:     []string{"r"},
				Usage:       "AWS region",
				Required:    true,
				EnvVars:     []string{"AWS_REGION"},
				Destination: &regArgs.Region,
			},
			&cli.StringFlag{
				Name:        "db-name",
				Usage:       "Athena database name",
				Required:    true,
				Destination: &regArgs.DBName,
			},
			&cli.StringFlag{
				Name:        "query-output",
				Usage:       "S3 URL for Athena query results",
				Required:    true,
				Destination: &regArgs.OutputPath,
			},
			&cli.StringFlag{
				Name:        "location",
				Aliases:     []string{"l"},
				Usage:       "S3 URL of the table root",
				Required:    true,
				Destination: &regArgs.Location,
			},
		},
	}
}

func registerAction(args arguments, regArgs registerArguments) error {
	table, err := args.generate()
	if err != nil {
		return err
	}

	// CreateTable does not touch the partition repository, only
	// RegisterPartition does. The registrar lambda owns that path.
	svc := catalog.New(regArgs.Region, regArgs.DBName, regArgs.OutputPath, adaptor.NewAthenaClient, nil)
	svc.WaitQueryResult = true

	return svc.CreateTable(table, regArgs.Location)
}
