package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/auth"
)

var (
	flagEmail    string
	flagName     string
	flagPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&flagName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&flagPassword, "password", "", "Password (min 8 characters)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.close()

	u, err := auth.NewPasswordAuthenticator(e.store.Users()).Register(cmd.Context(), flagEmail, flagName, flagPassword)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (%s)\n", u.Email, u.ID)
	return nil
}
