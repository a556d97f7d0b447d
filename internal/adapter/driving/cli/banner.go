package cli

import (
	"fmt"

	"github.com/alexlux58/AWS-ALERTING/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     _ __        __ ____       _    _     _____ ____ _____ ___ _   _  ____
    / \\ \      / // ___|     / \  | |   | ____|  _ \_   _|_ _| \ | |/ ___|
   / _ \\ \ /\ / / \___ \    / _ \ | |   |  _| | |_) || |  | ||  \| | |  _
  / ___ \\ V  V /   ___) |  / ___ \| |___| |___|  _ < | |  | || |\  | |_| |
 /_/   \_\\_/\_/   |____/  /_/   \_\_____|_____|_| \_\|_| |___|_| \_|\____|
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Alerting CLI (v%s)", version.FormatVersion())))
}
