package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
)

// NewConfirmCmd создаёт CLI-команду подтверждения email.
//
// Пример:
//
//	contactcli confirm --token <токен из письма>
func NewConfirmCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Подтвердить email по токену",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := api.NewClient(app.ServerURL)
			if err := c.ConfirmEmail(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "email confirmed")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "confirmation token")
	cmd.MarkFlagRequired("token")

	return cmd
}
