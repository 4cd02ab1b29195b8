package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду входа пользователя.
//
// Полученная пара access/refresh токенов сохраняется в локальный
// конфигурационный файл.
//
// Пример:
//
//	contactcli login --email test@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access/refresh токены)",
		Long: `Логин пользователя.

Пример:
  contactcli login --email test@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			resp, err := c.Login(email, password)
			if err != nil {
				return err
			}

			app.Creds.AccessToken = resp.AccessToken
			app.Creds.RefreshToken = resp.RefreshToken

			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (tokens saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}
