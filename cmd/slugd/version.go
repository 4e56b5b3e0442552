package main

import (
	"fmt"

	"github.com/shopfabrik/slugd/internal/build"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("slugd %s (commit %s, branch %s)\n", build.Version, build.Commit, build.Branch)
		},
	}
}
