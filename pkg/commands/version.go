package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ajans/visit-form/pkg/version"
	"github.com/urfave/cli/v2"
)

func printVersion(c *cli.Context) error {
	if c.Bool("json") {
		out, err := json.Marshal(version.Get())
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s\n", version.Get())
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "print version",
		Action: printVersion,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the version as JSON",
			},
		},
	}
}
