// Package cli реализует командный интерфейс клиента сервера контактов.
//
// Пакет отвечает за:
//   - root-команду и набор подкоманд;
//   - разбор аргументов и флагов;
//   - загрузку локальных учётных данных (access/refresh токены);
//   - выполнение команд и вывод результата.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/config"
)

// App — состояние CLI, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера контактов.
	ServerURL string

	// CredsPath — путь к файлу с токенами.
	CredsPath string
	// Creds — загруженные учётные данные. Может быть nil до PersistentPreRunE.
	Creds *config.Credentials
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// В PersistentPreRunE определяется путь к файлу учётных данных
// и загружаются сохранённые токены.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ServerURL: "https://127.0.0.1:8080",
	}

	cmd := &cobra.Command{
		Use:   "contactcli",
		Short: "CLI-клиент сервера контактов",
		Long: `CLI-клиент сервера контактов.

Команды:
  register       Регистрация нового пользователя
  confirm        Подтверждение email по токену
  login          Логин (получить access/refresh)
  refresh        Обновить токены по refresh-токену
  me             Профиль текущего пользователя
  contact        Операции над контактами (add/list/find/update/remove)
  birthdays      Контакты с днём рождения в ближайшую неделю
  version        Версия и дата сборки

Примеры:

Регистрация:
  contactcli register --username ivan123 --email test@example.com

Логин:
  contactcli login --email test@example.com
  (пароль запрашивается интерактивно, токены сохраняются в локальном конфиге)

Контакты:
  contactcli contact add --first-name Иван --email ivan@example.com --birthday 1990-04-12
  contactcli contact list
  contactcli birthdays
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "https://127.0.0.1:8080", "server base URL")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewConfirmCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewRefreshCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewContactCmd(app))
	cmd.AddCommand(NewBirthdaysCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr и процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
