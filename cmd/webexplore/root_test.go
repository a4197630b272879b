package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "webexplore" {
		t.Errorf("Use = %q, want %q", cmd.Use, "webexplore")
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command should silence cobra's usage and error output")
	}

	wantSubcommands := []string{"explore", "history", "version"}
	for _, name := range wantSubcommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("persistent verbose flag not registered")
	}
}

func TestRootCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "explore") {
		t.Error("help output does not mention the explore command")
	}
}
