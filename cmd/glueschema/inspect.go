package main

import (
	"github.com/k0kubun/pp"
	cli "github.com/urfave/cli/v2"
)

func inspectCommand(args *arguments) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show generated columns and partition keys of a record descriptor",
		Action: func(c *cli.Context) error {
			return inspectAction(*args)
		},
	}
}

func inspectAction(args arguments) error {
	table, err := args.generate()
	if err != nil {
		return err
	}

	pp.Println(table)
	return nil
}
