package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var runCmd = &cobra.Command{
	Use:                "run -- <command> [args...]",
	Short:              "Run a command with the vault's aliases injected as environment variables",
	DisableFlagParsing: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")

		if len(args) == 0 {
			return vaulterr.ErrNoCommand
		}

		scope, err := resolveScope(global, project)
		if err != nil {
			return err
		}
		selfExe, _ := os.Executable()
		loaded, err := orchestrate.LoadVault(scope, selfExe)
		if err != nil {
			return err
		}
		defer loaded.Close()

		env := os.Environ()
		for _, name := range loaded.Aliases.List() {
			value, ok, err := loaded.Aliases.Get(name, loaded.Dek)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			env = append(env, name+"="+value)
		}

		child := exec.Command(args[0], args[1:]...)
		child.Env = env
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr

		if err := child.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				code := exitErr.ExitCode()
				if code < 0 {
					// Signaled, not exited with a code of its own - the
					// child's exit status means nothing, so report failure.
					code = 1
				}
				os.Exit(code)
			}
			return err
		}
		return nil
	},
}

func init() {
	addScopeFlags(runCmd)
}
