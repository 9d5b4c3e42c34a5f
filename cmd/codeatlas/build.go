package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/store"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Build the directory/file structure graph",
	Args:  cobra.NoArgs,
	RunE:  runStructure,
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Build the import dependency graph",
	Long:  "Parses every supported source file, resolves imports against the project tree, and replaces the dependency graph. Builds the structure graph first when absent.",
	Args:  cobra.NoArgs,
	RunE:  runDeps,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all persisted graphs for the data directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.ClearGraphs()
	},
}

func runStructure(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.BuildStructural(cmd.Context(), progressPrinter); err != nil {
		return err
	}
	snap, _ := s.Load(store.Structural, store.Full)
	fmt.Printf("structure graph: %d nodes, %d edges\n", snap.Graph.Len(), len(snap.Graph.Edges))
	return nil
}

func runDeps(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.BuildDependency(cmd.Context(), progressPrinter); err != nil {
		return err
	}
	snap, _ := s.Load(store.Dependency, store.Full)
	fmt.Printf("dependency graph: %d nodes, %d edges\n", snap.Graph.Len(), len(snap.Graph.Edges))
	return nil
}
