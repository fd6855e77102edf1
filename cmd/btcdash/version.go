package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	versionFormat = "btcdash (C) 2023. %v, version %v-%v (%v %v)"
)

// Version string variables
var (
	version string
	builtBy string
	builtAt string
	commit  string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version of the btcdash binary",
	Long:  "print version of the btcdash binary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
		os.Exit(0)
	},
}

func getBtcdashVersion() string {
	return fmt.Sprintf(versionFormat, "btcdash", version, commit, builtBy, builtAt)
}

func printVersion() {
	fmt.Println(getBtcdashVersion())
}
