package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/config"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/export"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driving/cli"
	"github.com/alexlux58/AWS-ALERTING/pkg/console"
	"github.com/alexlux58/AWS-ALERTING/pkg/version"
)

func main() {
	app := cli.NewCLIApp(
		version.Version,
		console.NewConsole(),
		config.NewConfigRepository(),
		export.NewExportRepository(),
	)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
