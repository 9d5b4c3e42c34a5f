package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/scopeset"
	"github.com/mkoster/codeatlas/internal/store"
)

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Manage the scoped file set and build its symbol graph",
}

var scopeAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add project-relative files to the scope set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScope(func(set *scopeset.Set) error {
			for _, p := range args {
				if err := set.Add(p); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var scopeRemoveCmd = &cobra.Command{
	Use:   "remove <path>...",
	Short: "Remove files from the scope set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScope(func(set *scopeset.Set) error {
			for _, p := range args {
				if err := set.Remove(p); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var scopeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the scope set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScope((*scopeset.Set).Clear)
	},
}

var scopeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the scope set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withScope(func(set *scopeset.Set) error {
			for _, f := range set.Files() {
				fmt.Println(f)
			}
			return nil
		})
	},
}

var scopeBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the symbol-scope graph over the current scope set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.BuildScope(cmd.Context(), progressPrinter); err != nil {
			return err
		}
		snap, _ := s.Load(store.Scope, store.Full)
		fmt.Printf("scope graph: %d nodes, %d edges\n", snap.Graph.Len(), len(snap.Graph.Edges))
		return nil
	},
}

func init() {
	scopeCmd.AddCommand(scopeAddCmd)
	scopeCmd.AddCommand(scopeRemoveCmd)
	scopeCmd.AddCommand(scopeClearCmd)
	scopeCmd.AddCommand(scopeListCmd)
	scopeCmd.AddCommand(scopeBuildCmd)
}

// withScope opens a session, loads its scope set, and runs fn against it.
func withScope(fn func(*scopeset.Set) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	set, err := s.Scope()
	if err != nil {
		return err
	}
	return fn(set)
}
