package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/api"
)

// NewContactCmd собирает подкоманды работы с контактами.
func NewContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Операции над контактами",
	}

	cmd.AddCommand(newContactAddCmd(app))
	cmd.AddCommand(newContactListCmd(app))
	cmd.AddCommand(newContactFindCmd(app))
	cmd.AddCommand(newContactUpdateCmd(app))
	cmd.AddCommand(newContactRemoveCmd(app))

	return cmd
}

// accessToken возвращает сохранённый access-токен или ошибку с подсказкой.
func accessToken(app *App) (string, error) {
	if app.Creds == nil || app.Creds.AccessToken == "" {
		return "", errors.New("no access token saved; run `contactcli login` first")
	}
	return app.Creds.AccessToken, nil
}

func printContact(out io.Writer, c api.Contact) {
	fmt.Fprintf(out, "#%d %s %s  <%s>  %s  birthday: %s\n",
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday)
}

// contactFlags вешает на команду общие флаги полей контакта.
func contactFlags(cmd *cobra.Command, req *api.ContactRequest) {
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&req.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")
}

func newContactAddCmd(app *App) *cobra.Command {
	var req api.ContactRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать контакт",
		Long: `Создать контакт.

Пример:
  contactcli contact add --first-name Иван --email ivan@example.com --birthday 1990-04-12
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contact, err := c.CreateContact(token, req)
			if err != nil {
				return err
			}

			printContact(cmd.OutOrStdout(), contact)
			return nil
		},
	}

	contactFlags(cmd, &req)
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("birthday")

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список контактов",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contacts, err := c.ListContacts(token, skip, limit)
			if err != nil {
				return err
			}

			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no contacts")
				return nil
			}
			for _, contact := range contacts {
				printContact(cmd.OutOrStdout(), contact)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "offset")
	cmd.Flags().IntVar(&limit, "limit", 100, "page size")

	return cmd
}

func newContactFindCmd(app *App) *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Найти первый контакт по фильтрам",
		Long: `Найти первый контакт по подстрочным фильтрам.

Пример:
  contactcli contact find --last-name Петров
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contact, err := c.FindContact(token, firstName, lastName, email)
			if err != nil {
				return err
			}

			printContact(cmd.OutOrStdout(), contact)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name substring")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name substring")
	cmd.Flags().StringVar(&email, "email", "", "email substring")

	return cmd
}

func newContactUpdateCmd(app *App) *cobra.Command {
	var (
		id  int64
		req api.ContactRequest
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Полностью обновить контакт",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contact, err := c.UpdateContact(token, id, req)
			if err != nil {
				return err
			}

			printContact(cmd.OutOrStdout(), contact)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "contact id")
	contactFlags(cmd, &req)
	cmd.MarkFlagRequired("id")

	return cmd
}

func newContactRemoveCmd(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Удалить контакт",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := accessToken(app)
			if err != nil {
				return err
			}

			c := api.NewClient(app.ServerURL)
			contact, err := c.RemoveContact(token, id)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), "removed: ")
			printContact(cmd.OutOrStdout(), contact)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "contact id")
	cmd.MarkFlagRequired("id")

	return cmd
}
