package client

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dm-api/internal/entities"
	sessionv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/session/v1alpha1"
)

var (
	campaignID        string
	combatDescription string
	actionSource      string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session commands",
}

var createSessionCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.CreateSession(ctx, &sessionv1alpha1.CreateSessionRequest{
				CampaignID: campaignID,
				Name:       args[0],
			})
		})
	},
}

var getSessionCmd = &cobra.Command{
	Use:   "get [session-id]",
	Short: "Show a session with its chat and timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.GetSession(ctx, &sessionv1alpha1.SessionRequest{SessionID: args[0]})
		})
	},
}

var setPhaseCmd = &cobra.Command{
	Use:   "set-phase [session-id] [exploration|combat|social|rest]",
	Short: "Change the session phase",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.SetPhase(ctx, &sessionv1alpha1.SetPhaseRequest{
				SessionID: args[0],
				Phase:     entities.Phase(args[1]),
			})
		})
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [session-id] [sender] [message]",
	Short: "Post a chat message",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.AddChatMessage(ctx, &sessionv1alpha1.AddChatMessageRequest{
				SessionID: args[0],
				Sender:    args[1],
				Content:   args[2],
				IsDM:      args[1] == "DM",
			})
		})
	},
}

var startSessionCombatCmd = &cobra.Command{
	Use:   "start-combat [session-id]",
	Short: "Open the session's combat",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.StartCombat(ctx, &sessionv1alpha1.StartCombatRequest{
				SessionID:   args[0],
				Description: combatDescription,
			})
		})
	},
}

var endSessionCombatCmd = &cobra.Command{
	Use:   "end-combat [session-id]",
	Short: "Close the session's combat",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.EndCombat(ctx, &sessionv1alpha1.SessionRequest{SessionID: args[0]})
		})
	},
}

var sessionNextTurnCmd = &cobra.Command{
	Use:   "next-turn [session-id]",
	Short: "Advance the session combat",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.NextTurn(ctx, &sessionv1alpha1.SessionRequest{SessionID: args[0]})
		})
	},
}

var sessionDamageCmd = &cobra.Command{
	Use:   "damage [session-id] [combatant-id] [amount]",
	Short: "Damage a combatant in the session combat",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			return err
		}
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.ApplyDamage(ctx, &sessionv1alpha1.SessionAmountRequest{
				SessionID:   args[0],
				CombatantID: args[1],
				Amount:      amount,
				Source:      actionSource,
			})
		})
	},
}

var sessionHealCmd = &cobra.Command{
	Use:   "heal [session-id] [combatant-id] [amount]",
	Short: "Heal a combatant in the session combat",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			return err
		}
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.ApplyHealing(ctx, &sessionv1alpha1.SessionAmountRequest{
				SessionID:   args[0],
				CombatantID: args[1],
				Amount:      amount,
				Source:      actionSource,
			})
		})
	},
}

var deleteSessionCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its combats",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.session.DeleteSession(ctx, &sessionv1alpha1.SessionRequest{SessionID: args[0]})
		})
	},
}

func init() {
	createSessionCmd.Flags().StringVar(&campaignID, "campaign", "", "campaign id")
	startSessionCombatCmd.Flags().StringVar(&combatDescription, "description", "", "combat description")
	sessionDamageCmd.Flags().StringVar(&actionSource, "source", "", "who dealt the damage")
	sessionHealCmd.Flags().StringVar(&actionSource, "source", "", "who did the healing")

	sessionCmd.AddCommand(
		createSessionCmd,
		getSessionCmd,
		setPhaseCmd,
		chatCmd,
		startSessionCombatCmd,
		endSessionCombatCmd,
		sessionNextTurnCmd,
		sessionDamageCmd,
		sessionHealCmd,
		deleteSessionCmd,
	)
}
