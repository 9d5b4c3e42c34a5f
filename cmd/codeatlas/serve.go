package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mkoster/codeatlas/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph viewer websocket",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "127.0.0.1:8650", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Printf("serving %s on ws://%s/ws/graph\n", s.Root, flagAddr)
	return http.ListenAndServe(flagAddr, server.New(s).Handler())
}
