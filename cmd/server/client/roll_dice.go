package client

import (
	"context"

	"github.com/spf13/cobra"

	dicev1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/dice/v1alpha1"
)

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [entity-id] [context]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll-dice 1d20+5 goblin-1 attack
  roll-dice 2d6 fighter damage`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.dice.RollDice(ctx, &dicev1alpha1.RollDiceRequest{
				Notation: args[0],
				EntityID: args[1],
				Context:  args[2],
			})
		})
	},
}

var getRollSessionCmd = &cobra.Command{
	Use:   "get-roll-session [entity-id] [context]",
	Short: "Show an entity's roll log",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.dice.GetRollSession(ctx, &dicev1alpha1.RollSessionRequest{
				EntityID: args[0],
				Context:  args[1],
			})
		})
	},
}
