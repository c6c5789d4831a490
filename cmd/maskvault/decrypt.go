package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt and display every email",
	Long: `Decrypts the email of every record for display only; stored records stay
unchanged. Records that cannot be decrypted are reported individually with
their stored value and never abort the listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		views, err := app.svc.DecryptEmails(ctx)
		if err != nil {
			return err
		}

		fmt.Println("--- decrypted emails ---")
		ok := 0
		for _, v := range views {
			if v.Err != nil {
				fmt.Printf("ID %d: %s -> stored value: %s\n",
					v.ID, color.YellowString("(not encrypted or invalid ciphertext)"), v.Email)
				continue
			}
			ok++
			fmt.Printf("ID %d: %s\n", v.ID, v.Email)
		}
		app.log.Info("emails decrypted",
			zap.Int("rows", len(views)),
			zap.Int("decrypted", ok),
			zap.Int("skipped", len(views)-ok),
		)
		fmt.Printf("%s decrypted %d of %d emails\n", color.GreenString("✓"), ok, len(views))
		return nil
	},
}
