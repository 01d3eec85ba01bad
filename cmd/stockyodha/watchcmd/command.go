// Package watchcmd implements the long-running quote watcher service.
package watchcmd

import (
	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"watch",
		"Watch the default watchlist",
		"Watch polls the market status and the quotes of the default watchlist on an interval, with telemetry and health probes enabled.",
		buildInfo,
		cmdutils.RunAsService,
		business.WatcherMain,
	)
}
