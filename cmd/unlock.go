package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/crypto"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
	"github.com/obscura-corp/obscura-cli/internal/session"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Cache a vault's key for a period of time",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		timeout, _ := cmd.Flags().GetUint64("timeout")

		if timeout == 0 {
			return vaulterr.ErrInvalidTimeout
		}

		scope, err := resolveScope(global, project)
		if err != nil {
			return err
		}

		if !vaultfile.Exists(scope.VaultPath) {
			return vaulterr.ErrVaultNotFound
		}

		passphrase, err := prompt.Passphrase("Passphrase: ")
		if err != nil {
			return err
		}
		defer crypto.ClearBytes(passphrase)

		vf, err := vaultfile.Read(scope.VaultPath)
		if err != nil {
			return err
		}
		_, dek, err := vaultfile.DecryptWithPassphrase(vf, passphrase)
		if err != nil {
			return err
		}
		defer crypto.ClearBytes(dek)

		selfExe, _ := os.Executable()
		cache, err := session.Select(selfExe)
		if err != nil {
			return err
		}
		if err := cache.Store(scope.VaultPath, dek, time.Duration(timeout)*time.Minute); err != nil {
			return err
		}

		unit := "minutes"
		if timeout == 1 {
			unit = "minute"
		}
		fmt.Fprintf(os.Stdout, "Cached vault key for %d %s (target: %s)\n", timeout, unit, scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(unlockCmd)
	unlockCmd.Flags().Uint64("timeout", 60, "cache timeout in minutes")
}
