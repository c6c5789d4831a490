package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maskvault/maskvault/internal/cipher"
	"github.com/maskvault/maskvault/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every record exactly as stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		users, err := app.svc.List(ctx)
		if err != nil {
			return err
		}
		app.log.Info("users listed", zap.Int("rows", len(users)))

		fmt.Println("--- current users ---")
		for _, u := range users {
			line := fmt.Sprintf("ID %d: %s | %s | %s", u.ID, u.Name, u.Email, u.EmailState)
			if u.EmailState == model.EmailEncrypted {
				if at, err := cipher.IssuedAt(u.Email); err == nil {
					line += fmt.Sprintf(" (sealed %s)", at.Format(time.RFC3339))
				}
			}
			fmt.Println(line)
		}
		fmt.Printf("%s %d rows\n", color.GreenString("✓"), len(users))
		return nil
	},
}
