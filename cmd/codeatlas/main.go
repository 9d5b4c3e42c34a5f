package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/atlas"
	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/state"
)

var (
	flagProject string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "codeatlas",
	Short:         "Layered code-graph analysis for multi-language projects",
	Long:          "Codeatlas builds structural, dependency, and symbol-scope graphs over a source tree and serves them interactively or as static renders.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "project root (default: last opened, else current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(structureCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(clearCmd)
}

// openSession resolves the project root, records it in the recent list,
// and opens a session over the shared data directory.
func openSession() (*atlas.Session, error) {
	root := flagProject
	if root == "" {
		root = state.Load(config.Load("").StatePath()).LastProject()
	}
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	// Project-local atlas.yaml and .env layer over the defaults.
	cfg := config.Load(root)
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	if err := state.Load(cfg.StatePath()).AddProject(root); err != nil {
		slog.Warn("recent-projects update failed", "err", err)
	}
	return atlas.Open(cfg, root)
}

// progressPrinter writes build progress to stderr.
func progressPrinter(current, total int, message string) {
	fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", current, total, message)
	if current >= total {
		fmt.Fprintln(os.Stderr)
	}
}
