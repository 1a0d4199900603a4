package cli

import (
	"fmt"

	"github.com/diillson/cloud-cost-ai-go/pkg/console"
	"github.com/diillson/cloud-cost-ai-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   _____ _                 _  _____          _
  / ____| |               | |/ ____|        | |
 | |    | | ___  _   _  __| | |     ___  ___| |_
 | |    | |/ _ \| | | |/ _` + "`" + ` | |    / _ \/ __| __|
 | |____| | (_) | |_| | (_| | |___| (_) \__ \ |_
  \_____|_|\___/ \__,_|\__,_|\_____\___/|___/\__|
`
	fmt.Println(console.BrightGreen(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(console.BrightCyan(fmt.Sprintf("Cloud Cost Forecast & Report CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
