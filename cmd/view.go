package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockboxcli/lockbox/internal/configs"
	lberrors "github.com/lockboxcli/lockbox/internal/errors"
	"github.com/lockboxcli/lockbox/internal/terminal"
	"github.com/lockboxcli/lockbox/internal/ui"
	"github.com/lockboxcli/lockbox/internal/workflows"
)

var viewReveal bool

func init() {
	viewCmd.Flags().BoolVar(&viewReveal, "reveal", false, "display credential values in plaintext (asks for confirmation)")
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Decrypt and display the stored credentials",
	Long: `Prompts for the master password and prints the stored credentials.

Values are masked by default: the first and last four characters are shown
with the middle hidden. Pass --reveal and confirm to print them in full.

Examples:
  # Show masked credentials
  lockbox view

  # Show plaintext values after confirmation
  lockbox view --reveal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting view command")

		if err := configs.InitUserSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init user settings: %v", err)
		}
		vaultPath := configs.UserLockboxSettings.VaultPath
		Logger.Debugf("Vault path: %s", vaultPath)

		prompt, err := terminal.NewPrompt()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open terminal: %v", err)
		}

		password, err := prompt.ReadPassword("Enter master password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		spinner, cleanup := startSpinner("Decrypting vault...", verbose)
		defer cleanup()

		result, err := workflows.View(workflows.ViewOptions{
			VaultPath: vaultPath,
			Password:  password,
		})
		if errors.Is(err, lberrors.ErrVaultNotFound) {
			finalMessage := ui.Error.Sprint("✗") + " No vault found at " + ui.Path.Sprint(vaultPath) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox save") + " to create one"
			spinner.FinalMSG = finalMessage
			return nil
		}
		if errors.Is(err, lberrors.ErrDecryptionFailed) {
			finalMessage := ui.Error.Sprint("✗") + " Decryption failed: wrong password or corrupted vault"
			spinner.FinalMSG = finalMessage
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault: %v", err)
		}
		Logger.Infof("Vault opened (format version %d)", result.Version)

		spinner.Stop()

		reveal := false
		if viewReveal {
			reveal, err = prompt.Confirm("Display credential values in plaintext?")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read confirmation: %v", err)
			}
		}

		fmt.Println(ui.Success.Sprint("✓") + " Vault created " + result.Bundle.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		for _, secret := range result.Bundle.Secrets {
			value := secret.Value
			if !reveal {
				value = ui.MaskSecret(value)
			}
			fmt.Printf("  %s: %s\n", ui.Highlight.Sprint(secret.Name), value)
		}
		return nil
	},
}
