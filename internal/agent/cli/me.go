package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
)

// NewMeCmd создаёт CLI-команду вывода профиля текущего пользователя.
func NewMeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Профиль текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return errors.New("no access token saved; run `contactcli login` first")
			}

			c := api.NewClient(app.ServerURL)
			resp, err := c.Me(app.Creds.AccessToken)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:        %s\n", resp.ID)
			fmt.Fprintf(out, "username:  %s\n", resp.Username)
			fmt.Fprintf(out, "email:     %s\n", resp.Email)
			fmt.Fprintf(out, "confirmed: %v\n", resp.Confirmed)
			if resp.Avatar != nil {
				fmt.Fprintf(out, "avatar:    %s\n", *resp.Avatar)
			}
			return nil
		},
	}

	return cmd
}
