package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maskvault/maskvault/internal/errs"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt every email in place",
	Long: `Encrypts the email of every record with the master key, creating the key
file on first use. The operation is rejected when any record already holds
ciphertext.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		rep, err := app.svc.EncryptEmails(ctx)
		if err != nil {
			if errors.Is(err, errs.ErrAlreadyEncrypted) {
				return fmt.Errorf("%w; run %s or %s to restore plaintext first",
					err, color.YellowString("maskvault anonymize"), color.YellowString("maskvault init --reset"))
			}
			return err
		}
		app.log.Info("emails encrypted",
			zap.String("run_id", rep.RunID.String()),
			zap.Int("rows", rep.Rows),
			zap.Duration("took", rep.Duration),
		)

		if rep.Rows == 0 {
			fmt.Printf("%s nothing to encrypt (0 rows)\n", color.GreenString("✓"))
			return nil
		}
		fmt.Printf("%s all %d emails encrypted\n", color.GreenString("✓"), rep.Rows)
		return nil
	},
}
