package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/sprintbranch/internal/credential"
	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/ui/setup"
)

var authUser string

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "manage the Jira API token in the system keyring",
	}
	authCmd.PersistentFlags().StringVar(&authUser, "user", "", "account name (defaults to the configured user)")

	authCmd.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "store an API token",
			Args:  cobra.NoArgs,
			RunE:  runAuthSet,
		},
		&cobra.Command{
			Use:   "delete",
			Short: "remove the stored API token",
			Args:  cobra.NoArgs,
			RunE:  runAuthDelete,
		},
	)
	return authCmd
}

// resolveAuthUser returns --user, falling back to the configured user.
func resolveAuthUser() (string, error) {
	if authUser != "" {
		return authUser, nil
	}
	cfg, err := model.LoadConfig(configPath, nil)
	if err != nil {
		return "", &configError{err: fmt.Errorf("pass --user or fix the config: %w", err)}
	}
	return cfg.User, nil
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	user, err := resolveAuthUser()
	if err != nil {
		return err
	}

	token, err := setup.AskToken(cmd.Context(), user, accessible())
	if err != nil {
		return err
	}

	store, err := credential.Open()
	if err != nil {
		return err
	}
	if err := store.SetToken(user, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s saved.\n", user)
	return nil
}

func runAuthDelete(cmd *cobra.Command, _ []string) error {
	user, err := resolveAuthUser()
	if err != nil {
		return err
	}

	store, err := credential.Open()
	if err != nil {
		return err
	}
	if err := store.DeleteToken(user); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s removed.\n", user)
	return nil
}
