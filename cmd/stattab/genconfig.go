package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stattab/pkg/config"
)

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Print a commented default configuration file",
	Long: `genconfig writes a default TOML configuration to stdout. Redirect it
to a file and edit the result:

  stattab genconfig > stattab.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.GenerateDefault()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}
