package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
)

// NewBirthdaysCmd создаёт CLI-команду списка ближайших дней рождения.
func NewBirthdaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "Контакты с днём рождения в ближайшие 7 дней",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contacts, err := c.UpcomingBirthdays(token)
			if err != nil {
				return err
			}

			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no upcoming birthdays")
				return nil
			}
			for _, contact := range contacts {
				printContact(cmd.OutOrStdout(), contact)
			}
			return nil
		},
	}

	return cmd
}
