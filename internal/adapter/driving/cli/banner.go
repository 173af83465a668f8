package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/dylanstetts/listGraphWebhooks/pkg/version"
)

// displayWelcomeBanner shows the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
          ____                 _       __        __   _     _                 _
         / ___|_ __ __ _ _ __ | |__    \ \      / /__| |__ | |__   ___   ___ | | _____
        | |  _| '__/ _' | '_ \| '_ \    \ \ /\ / / _ \ '_ \| '_ \ / _ \ / _ \| |/ / __|
        | |_| | | | (_| | |_) | | | |    \ V  V /  __/ |_) | | | | (_) | (_) |   <\__ \
         \____|_|  \__,_| .__/|_| |_|     \_/\_/ \___|_.__/|_| |_|\___/ \___/|_|\_\___/
                        |_|
        `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Graph Webhook Subscription Analyzer (v%s)", formattedVersion)))
}
