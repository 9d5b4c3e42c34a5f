package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/state"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List recently opened projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recent := state.Load(config.Load("").StatePath()).Recent()
		if len(recent) == 0 {
			fmt.Println("no recent projects")
			return nil
		}
		for _, p := range recent {
			fmt.Printf("%s\t%s\n", p.Name, p.Path)
		}
		return nil
	},
}
