package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/core"
)

var (
	flagFrom string
	flagTo   string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the all-time balance",
	RunE:  runBalance,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the financial report for a date range",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagFrom, "from", "", "Period start as yyyy-MM-dd")
	reportCmd.Flags().StringVar(&flagTo, "to", "", "Period end as yyyy-MM-dd")
	_ = reportCmd.MarkFlagRequired("from")
	_ = reportCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(balanceCmd, reportCmd)
}

func runBalance(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	balance, err := e.tracker.Balance(cmd.Context(), e.session)
	if err != nil {
		return err
	}
	fmt.Printf("Balance: %s\n", core.FormatAmount(balance))
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	from, err := time.Parse(core.DateLayout, flagFrom)
	if err != nil {
		return fmt.Errorf("from must be yyyy-MM-dd, got %q", flagFrom)
	}
	to, err := time.Parse(core.DateLayout, flagTo)
	if err != nil {
		return fmt.Errorf("to must be yyyy-MM-dd, got %q", flagTo)
	}

	report, err := e.tracker.Report(cmd.Context(), e.session, from, to)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}
