package main

import (
	"fmt"

	"github.com/aretw0/runcmd"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of runcmd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("runcmd version %s\n", runcmd.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
