package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lockboxcli/lockbox/internal/configs"
	lberrors "github.com/lockboxcli/lockbox/internal/errors"
	"github.com/lockboxcli/lockbox/internal/terminal"
	"github.com/lockboxcli/lockbox/internal/ui"
	"github.com/lockboxcli/lockbox/internal/workflows"
)

var rotateForce bool

func init() {
	rotateCmd.Flags().BoolVar(&rotateForce, "force", false, "skip confirmation prompt")
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Re-encrypt the vault under a new master password",
	Long: `Decrypts the vault with your current password and re-encrypts it under a
new one, without changing the stored credentials.

The command will:
  1. Decrypt the vault with the old password
  2. Write a timestamped backup of the pre-rotation vault file
  3. Re-encrypt the credentials under the new password with fresh
     derivation parameters

If any step fails, the live vault is left byte-for-byte unchanged. The
backup remains openable with the old password; keep or delete it as your
threat model dictates.

Examples:
  # Rotate the master password (with confirmation prompt)
  lockbox rotate

  # Rotate without confirmation prompt
  lockbox rotate --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rotate command")

		if err := configs.InitUserSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init user settings: %v", err)
		}
		vaultPath := configs.UserLockboxSettings.VaultPath
		Logger.Debugf("Vault path: %s", vaultPath)

		prompt, err := terminal.NewPrompt()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open terminal: %v", err)
		}

		if !rotateForce {
			fmt.Fprintf(os.Stderr, "%s This will re-encrypt your vault under a new master password.\n", ui.Warning.Sprint("Warning:"))
			fmt.Fprintln(os.Stderr, "  Your old password will only open the pre-rotation backup afterwards.")
			ok, err := prompt.Confirm("Do you want to continue?")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read confirmation: %v", err)
			}
			if !ok {
				cmd.Println(ui.Warning.Sprint("⚠") + " Rotation cancelled.")
				return nil
			}
		}

		oldPassword, err := prompt.ReadPassword("Enter current master password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		newPassword, err := promptNewPassword(prompt, "Enter new master password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		spinner, cleanup := startSpinner("Rotating vault password...", verbose)
		defer cleanup()

		result, err := workflows.Rotate(workflows.RotateOptions{
			VaultPath:   vaultPath,
			OldPassword: oldPassword,
			NewPassword: newPassword,
			BackupDir:   configs.UserLockboxSettings.BackupDir,
		})
		if errors.Is(err, lberrors.ErrVaultNotFound) {
			finalMessage := ui.Error.Sprint("✗") + " No vault found at " + ui.Path.Sprint(vaultPath) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox save") + " to create one"
			spinner.FinalMSG = finalMessage
			return nil
		}
		if errors.Is(err, lberrors.ErrDecryptionFailed) {
			finalMessage := ui.Error.Sprint("✗") + " Decryption failed: wrong password or corrupted vault\n" +
				ui.Info.Sprint("→") + " The vault was not modified"
			spinner.FinalMSG = finalMessage
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to rotate vault: %v", err)
		}
		Logger.Infof("Rotation completed, backup at %s", result.BackupPath)

		finalMessage := ui.Success.Sprint("✓") + " Vault re-encrypted under the new password\n" +
			"    backup: " + ui.Path.Sprint(result.BackupPath) + "\n" +
			ui.Info.Sprint("→") + " The backup still opens with your old password; delete it once you no longer need it"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
