package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
)

// NewRegisterCmd создаёт CLI-команду регистрации нового пользователя.
//
// Пароль запрашивается интерактивно (или читается из stdin с
// --password-stdin), чтобы не светился в истории шелла.
//
// Пример:
//
//	contactcli register --username ivan123 --email test@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		username, email string
		passwordStdin   bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  contactcli register --username ivan123 --email test@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			resp, err := c.Register(username, email, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "registration successful")
			if resp.ConfirmToken != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "confirm token: %s\n", resp.ConfirmToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for registration")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
