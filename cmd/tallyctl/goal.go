package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/core"
)

var (
	flagGoalName string
	flagTarget   string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the savings goal",
	RunE:  runGoalView,
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the savings goal, replacing any existing one",
	RunE:  runGoalSet,
}

func init() {
	goalSetCmd.Flags().StringVar(&flagGoalName, "name", "", "Goal name")
	goalSetCmd.Flags().StringVar(&flagTarget, "target", "", "Target amount, e.g. 5000.00")
	_ = goalSetCmd.MarkFlagRequired("name")
	_ = goalSetCmd.MarkFlagRequired("target")

	goalCmd.AddCommand(goalSetCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalView(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	view, err := e.tracker.ViewGoal(cmd.Context(), e.session)
	if err != nil {
		return err
	}
	fmt.Print(view)
	return nil
}

func runGoalSet(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	target, err := core.ParseAmount(flagTarget)
	if err != nil {
		return err
	}
	if err := e.tracker.SetGoal(cmd.Context(), e.session, flagGoalName, target); err != nil {
		return err
	}
	fmt.Printf("Goal %q set with target %s\n", flagGoalName, core.FormatAmount(target))
	return nil
}
