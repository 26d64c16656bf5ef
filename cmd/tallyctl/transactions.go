package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/core"
)

var (
	flagAmount      string
	flagCategory    string
	flagDate        string
	flagDescription string
	flagType        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, optionally filtered by date, category or type",
	RunE:  runList,
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a transaction by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	addCmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount, e.g. 12.50")
	addCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Category name")
	addCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Date as yyyy-MM-dd (default today)")
	addCmd.Flags().StringVar(&flagDescription, "desc", "", "Free-form description")
	addCmd.Flags().StringVarP(&flagType, "type", "t", "expense", "income or expense")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("category")

	listCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Only transactions on this yyyy-MM-dd date")
	listCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Only transactions in this category")
	listCmd.Flags().StringVarP(&flagType, "type", "t", "", "Only income or expense transactions")

	rootCmd.AddCommand(addCmd, listCmd, removeCmd)
}

func parseTypeFlag(s string) (bool, error) {
	switch s {
	case "income":
		return true, nil
	case "expense":
		return false, nil
	default:
		return false, fmt.Errorf("type must be income or expense, got %q", s)
	}
}

func runAdd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	amount, err := core.ParseAmount(flagAmount)
	if err != nil {
		return err
	}
	income, err := parseTypeFlag(flagType)
	if err != nil {
		return err
	}
	date := time.Now()
	if flagDate != "" {
		date, err = time.Parse(core.DateLayout, flagDate)
		if err != nil {
			return fmt.Errorf("date must be yyyy-MM-dd, got %q", flagDate)
		}
	}

	txn, err := e.tracker.AddTransaction(cmd.Context(), e.session, amount, flagCategory, date, flagDescription, income)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %s (%s) on %s, id %s\n",
		flagType, core.FormatAmount(txn.Amount), txn.Category, txn.Date.Format(core.DateLayout), txn.ID)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()

	var listing string
	switch {
	case flagDate != "":
		date, err := time.Parse(core.DateLayout, flagDate)
		if err != nil {
			return fmt.Errorf("date must be yyyy-MM-dd, got %q", flagDate)
		}
		listing, err = e.tracker.ListTransactionsByDate(ctx, e.session, date)
		if err != nil {
			return err
		}
	case flagCategory != "":
		listing, err = e.tracker.ListTransactionsByCategory(ctx, e.session, flagCategory)
		if err != nil {
			return err
		}
	case flagType != "":
		income, err := parseTypeFlag(flagType)
		if err != nil {
			return err
		}
		listing, err = e.tracker.ListTransactionsByType(ctx, e.session, income)
		if err != nil {
			return err
		}
	default:
		listing, err = e.tracker.ListTransactions(ctx, e.session)
		if err != nil {
			return err
		}
	}

	fmt.Print(listing)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.tracker.RemoveTransaction(cmd.Context(), e.session, args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed transaction %s\n", args[0])
	return nil
}
