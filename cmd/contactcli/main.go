// CLI-клиент сервера контактов.
package main

import (
	"github.com/IvanChernomyrdin/go-contacts-api/internal/agent/cli"
)

// Заполняются при сборке через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=2026-08-28"
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
