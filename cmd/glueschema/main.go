package main

import (
	"os"

	"github.com/sirupsen/logrus"

	cli "github.com/urfave/cli/v2"
)

var logger = logrus.New()

func main() {
	var args arguments

	app := &cli.App{
		Name:  "glueschema",
		Usage: "CLI utility of glueschema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "descriptor",
				Aliases:     []string{"d"},
				Usage:       "Record descriptor JSON file",
				Required:    true,
				Destination: &args.DescriptorFile,
			},
		},
		Commands: []*cli.Command{
			generateCommand(&args),
			inspectCommand(&args),
			registerCommand(&args),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		logger.WithError(err).Fatal("Abort")
	}
}
