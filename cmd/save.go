package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lockboxcli/lockbox/internal/configs"
	"github.com/lockboxcli/lockbox/internal/terminal"
	"github.com/lockboxcli/lockbox/internal/ui"
	"github.com/lockboxcli/lockbox/internal/vault"
	"github.com/lockboxcli/lockbox/internal/workflows"
)

var saveForce bool

func init() {
	saveCmd.Flags().BoolVarP(&saveForce, "force", "f", false, "overwrite an existing vault without confirmation")
}

// Credential slots stored in the vault. Order is preserved on disk and in output.
var secretSlots = []string{"primary", "secondary"}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create a vault from interactively entered credentials",
	Long: `Prompts for a master password and your API credentials, then writes them
to the vault file encrypted with AES-256-GCM.

The master password must be at least 12 characters and contain an uppercase
letter, a lowercase letter, a digit, and a special character. An existing
vault is only overwritten after explicit confirmation (or with --force).

Examples:
  # Create a new vault
  lockbox save

  # Replace an existing vault without the confirmation prompt
  lockbox save --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting save command")

		if err := configs.InitUserSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init user settings: %v", err)
		}
		vaultPath := configs.UserLockboxSettings.VaultPath
		Logger.Debugf("Vault path: %s", vaultPath)

		prompt, err := terminal.NewPrompt()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open terminal: %v", err)
		}

		if vault.NewStore(vaultPath).Exists() && !saveForce {
			Logger.Debugf("Vault already exists, asking for confirmation")
			ok, err := prompt.Confirm("A vault already exists at " + ui.Path.Sprint(vaultPath) + ". Overwrite it?")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read confirmation: %v", err)
			}
			if !ok {
				cmd.Println(ui.Warning.Sprint("⚠") + " Save cancelled. Existing vault left untouched.")
				return nil
			}
		}

		password, err := promptNewPassword(prompt, "Enter a master password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		bundle := vault.SecretBundle{CreatedAt: time.Now().UTC()}
		for _, slot := range secretSlots {
			value, err := prompt.ReadLine("Value for " + ui.Highlight.Sprint(slot) + " (leave empty to skip): ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret value: %v", err)
			}
			bundle.Secrets = append(bundle.Secrets, vault.Secret{Name: slot, Value: value})
		}

		spinner, cleanup := startSpinner("Encrypting vault...", verbose)
		defer cleanup()

		result, err := workflows.Save(workflows.SaveOptions{
			VaultPath: vaultPath,
			Password:  password,
			Bundle:    bundle,
			Force:     true, // overwrite already confirmed above
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to save vault: %v", err)
		}
		Logger.Infof("Vault written with format version %d", result.Version)

		finalMessage := ui.Success.Sprint("✓") + " Vault saved to " + ui.Path.Sprint(result.VaultPath) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox view") + " to inspect it"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
