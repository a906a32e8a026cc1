package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/sprintbranch/internal/credential"
	"github.com/nhle/sprintbranch/internal/model"
	"github.com/nhle/sprintbranch/internal/ui/setup"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "write the config file and store the API token",
		Long: `
  Asks for the Jira URL, user, token and board, writes them to the config
  file (the token goes to the system keyring instead).
`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	// An existing config pre-fills the form; a broken one is ignored.
	current, _ := model.LoadConfig(configPath, nil)

	answers, err := setup.Run(cmd.Context(), current, accessible())
	if err != nil {
		return err
	}

	store, err := credential.Open()
	if err != nil {
		return err
	}
	if err := store.SetToken(answers.Config.User, answers.Token); err != nil {
		return err
	}

	if err := model.SaveConfig(configPath, &answers.Config); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", configPath)
	return nil
}
