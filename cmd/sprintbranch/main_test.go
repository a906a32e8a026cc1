package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/sprintbranch/internal/model"
)

func commandReturning(err error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(*cobra.Command, []string) error { return err },
	}
	cmd.SetArgs([]string{})
	return cmd
}

func TestExecuteExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{name: "success", want: 0},
		{
			name:    "not in git dir",
			err:     model.Errorf(model.KindNotInGitDir, "git rev-parse --git-dir", "no git directory reported"),
			want:    model.KindNotInGitDir.ExitCode(),
			wantOut: "NotInGitDir",
		},
		{
			name:    "wrapped transport error",
			err:     fmt.Errorf("listing: %w", &model.Error{Kind: model.KindTransport, Cause: errors.New("refused")}),
			want:    model.KindTransport.ExitCode(),
			wantOut: "refused",
		},
		{
			name:    "config",
			err:     &configError{err: errors.New("url is required")},
			want:    exitConfig,
			wantOut: "config: url is required",
		},
		{
			name:    "anything else",
			err:     errors.New("keyring locked"),
			want:    exitOther,
			wantOut: "keyring locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := execute(context.Background(), commandReturning(tt.err), &stderr)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, stderr.String(), tt.wantOut)
		})
	}
}

func TestRunPickMissingConfig(t *testing.T) {
	for _, env := range []string{"URL", "USER", "TOKEN", "BOARD"} {
		t.Setenv(model.EnvPrefix+"_"+env, "")
	}

	root := newRootCmd()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})

	var stderr bytes.Buffer
	root.SetErr(&stderr)

	code := execute(context.Background(), root, &stderr)
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr.String(), "not found")
}

func TestRootCommandFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"board", "project", "style", "dry-run", "timeout"} {
		assert.NotNil(t, root.Flags().Lookup(name), name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "auth")
	assert.Contains(t, names, "init")
}
