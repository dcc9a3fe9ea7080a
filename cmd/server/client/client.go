// Package client provides commands that exercise a running DM API server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	combatv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/combat/v1alpha1"
	dicev1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/dice/v1alpha1"
	sessionv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/session/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the DM API",
	Long:  `Client commands make real gRPC requests against a running DM API server and print the JSON responses.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(sessionCmd)
	ClientCmd.AddCommand(combatCmd)
	ClientCmd.AddCommand(rollDiceCmd)
	ClientCmd.AddCommand(getRollSessionCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// withClients opens a connection, runs fn with a request context and closes everything
func withClients(fn func(ctx context.Context, c *clients) (any, error)) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, &clients{
		combat:  combatv1alpha1.NewClient(conn),
		session: sessionv1alpha1.NewClient(conn),
		dice:    dicev1alpha1.NewClient(conn),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

type clients struct {
	combat  *combatv1alpha1.Client
	session *sessionv1alpha1.Client
	dice    *dicev1alpha1.Client
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
