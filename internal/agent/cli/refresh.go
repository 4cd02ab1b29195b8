package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/config"
)

// NewRefreshCmd создаёт CLI-команду обновления токенов.
//
// Использует refresh_token из локального конфига; полученная новая
// пара токенов сохраняется на место старой (ротация).
func NewRefreshCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Обновить access/refresh токены",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.RefreshToken == "" {
				return errors.New("no refresh token saved; run `contactcli login` first")
			}

			c := api.NewClient(app.ServerURL)
			resp, err := c.Refresh(app.Creds.RefreshToken)
			if err != nil {
				return err
			}

			app.Creds.AccessToken = resp.AccessToken
			app.Creds.RefreshToken = resp.RefreshToken

			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "tokens refreshed")
			return nil
		},
	}

	return cmd
}
