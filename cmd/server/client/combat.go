package client

import (
	"context"

	"github.com/spf13/cobra"

	combatv1alpha1 "github.com/KirkDiggler/dm-api/internal/handlers/combat/v1alpha1"
)

var (
	combatantSpec  combatv1alpha1.CombatantSpec
	combatantNPC   bool
	rollInitiative bool
)

var combatCmd = &cobra.Command{
	Use:   "combat",
	Short: "Combat commands",
}

var getCombatCmd = &cobra.Command{
	Use:   "get [combat-id]",
	Short: "Show a combat",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.combat.GetCombat(ctx, &combatv1alpha1.CombatRequest{CombatID: args[0]})
		})
	},
}

var addCombatantCmd = &cobra.Command{
	Use:   "add-combatant [combat-id] [name]",
	Short: "Add a combatant",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		def := combatantSpec
		def.Name = args[1]
		if combatantNPC {
			npc, player := true, false
			def.IsNPC = &npc
			def.IsPlayer = &player
		}

		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.combat.AddCombatant(ctx, &combatv1alpha1.AddCombatantRequest{
				CombatID:       args[0],
				Combatant:      def,
				RollInitiative: rollInitiative,
			})
		})
	},
}

var startCombatCmd = &cobra.Command{
	Use:   "start [combat-id]",
	Short: "Start round one",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.combat.StartCombat(ctx, &combatv1alpha1.CombatRequest{CombatID: args[0]})
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [combat-id]",
	Short: "Show the polling summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.combat.GetSummary(ctx, &combatv1alpha1.CombatRequest{CombatID: args[0]})
		})
	},
}

var conditionCmd = &cobra.Command{
	Use:   "condition [combat-id] [combatant-id] [condition]",
	Short: "Add a condition to a combatant",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClients(func(ctx context.Context, c *clients) (any, error) {
			return c.combat.AddCondition(ctx, &combatv1alpha1.ConditionRequest{
				CombatID:    args[0],
				CombatantID: args[1],
				Condition:   args[2],
			})
		})
	},
}

func init() {
	flags := addCombatantCmd.Flags()
	flags.StringVar(&combatantSpec.ID, "id", "", "combatant id (generated when empty)")
	flags.IntVar(&combatantSpec.Initiative, "initiative", 0, "initiative score")
	flags.IntVar(&combatantSpec.InitiativeBonus, "initiative-bonus", 0, "initiative bonus")
	flags.IntVar(&combatantSpec.MaxHP, "max-hp", 10, "maximum hit points")
	flags.BoolVar(&combatantNPC, "npc", false, "add as an NPC instead of a player")
	flags.BoolVar(&rollInitiative, "roll", false, "roll 1d20 + bonus for initiative")

	combatCmd.AddCommand(getCombatCmd, addCombatantCmd, startCombatCmd, summaryCmd, conditionCmd)
}
