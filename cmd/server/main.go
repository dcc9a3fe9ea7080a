// Package main is the entry point for the dm-api gRPC server and its client commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dm-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dm-api",
	Short: "DM API gRPC Server",
	Long:  `DM API runs tabletop sessions for a dungeon master: combat tracking, session timelines and dice rolls over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
