package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kabutey/campuscent/internal/auth"
	"github.com/kabutey/campuscent/internal/cli"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			prompter.Println(cli.FormatTitle("Create your campuscent account"))

			username, err := prompter.PromptLine(ctx, "Username")
			if err != nil {
				return err
			}
			password, err := prompter.PromptLine(ctx, "Password")
			if err != nil {
				return err
			}

			user, err := auth.Register(ctx, store, username, password)
			if err != nil {
				return err
			}

			prompter.Println(cli.FormatSuccess(fmt.Sprintf("Account %q created. Run 'campuscent session' to start budgeting.", user.Username)))
			return nil
		},
	}
}
