package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
	"github.com/lockboxcli/lockbox/internal/terminal"
	"github.com/lockboxcli/lockbox/internal/ui"
	"github.com/lockboxcli/lockbox/internal/vault"
)

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// promptNewPassword reads and confirms a master password, re-prompting until
// it passes the strength policy and both entries match. Policy failures are
// recovered here, never surfaced as command failures.
func promptNewPassword(prompt *terminal.Prompt, label string) (string, error) {
	for {
		password, err := prompt.ReadPassword(label)
		if err != nil {
			return "", err
		}

		if err := vault.ValidatePassword(password); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warning.Sprint("⚠")+" "+err.Error())
			continue
		}

		confirmation, err := prompt.ReadPassword("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != confirmation {
			fmt.Fprintln(os.Stderr, ui.Warning.Sprint("⚠")+" "+lberrors.ErrPasswordMismatch.Error()+", try again")
			continue
		}

		return password, nil
	}
}
