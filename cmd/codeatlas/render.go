package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/render"
	"github.com/mkoster/codeatlas/internal/store"
)

var flagTier string

var renderCmd = &cobra.Command{
	Use:   "render <structural|dependency|scope>",
	Short: "Evaluate the render strategy for a built graph",
	Long:  "Loads the requested graph and reports how it would be presented: interactively, progressively chunked, or as a pre-rendered static image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagTier, "tier", "full", "graph tier: full|simple")
}

func parseKind(name string) (store.Kind, error) {
	switch name {
	case "structural":
		return store.Structural, nil
	case "dependency":
		return store.Dependency, nil
	case "scope":
		return store.Scope, nil
	}
	return "", fmt.Errorf("unknown graph kind %q", name)
}

func parseTier(name string) (store.Tier, error) {
	switch name {
	case "full":
		return store.Full, nil
	case "simple":
		return store.Simple, nil
	}
	return "", fmt.Errorf("unknown tier %q", name)
}

func runRender(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	tier, err := parseTier(flagTier)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	plan := s.Plan(kind, tier)
	switch plan.Mode {
	case render.Static:
		fmt.Printf("static render: %s\n", plan.StaticImage)
	default:
		fmt.Printf("interactive render: %d nodes, %d edges", len(plan.Nodes), len(plan.Edges))
		if plan.Stream != nil {
			fmt.Printf(" (+%d nodes delivered progressively)", plan.Stream.Remaining())
		}
		fmt.Println()
	}
	return nil
}
