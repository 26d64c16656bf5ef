package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/core"
)

var (
	flagMonth string
	flagLimit string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the monthly budget",
	RunE:  runBudgetView,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the budget for a month, replacing any existing one",
	RunE:  runBudgetSet,
}

var budgetCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send an over-limit notification if spending exceeds the budget",
	RunE:  runBudgetCheck,
}

func init() {
	budgetSetCmd.Flags().StringVar(&flagMonth, "month", "", "Month as yyyy-MM")
	budgetSetCmd.Flags().StringVar(&flagLimit, "limit", "", "Spending limit, e.g. 1000.00")
	_ = budgetSetCmd.MarkFlagRequired("month")
	_ = budgetSetCmd.MarkFlagRequired("limit")

	budgetCmd.AddCommand(budgetSetCmd, budgetCheckCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetView(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	view, err := e.tracker.ViewBudget(cmd.Context(), e.session)
	if err != nil {
		return err
	}
	fmt.Print(view)
	return nil
}

func runBudgetSet(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	month, err := core.ParseMonth(flagMonth)
	if err != nil {
		return err
	}
	limit, err := core.ParseAmount(flagLimit)
	if err != nil {
		return err
	}

	if err := e.tracker.SetBudget(cmd.Context(), e.session, month, limit); err != nil {
		return err
	}
	fmt.Printf("Budget for %s set to %s\n", month, core.FormatAmount(limit))
	return nil
}

func runBudgetCheck(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.tracker.CheckExpenseLimit(cmd.Context(), e.session, e.session.Email); err != nil {
		return err
	}
	return nil
}
