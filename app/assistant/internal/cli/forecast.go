package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forecast <dataset-key> [years...]",
		Short: "Forecast one dataset (years like 2570 or 70; default from config)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runForecast,
	}
	cmd.Flags().String("chart", "line", "Chart kind: line or bar")

	RootCmd.AddCommand(cmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("chart")
	if kind != string(intent.ChartLine) && kind != string(intent.ChartBar) {
		return fmt.Errorf("unknown chart kind: %s", kind)
	}

	years := intent.ExtractYears(strings.Join(args[1:], " "))
	if len(args) > 1 && len(years) == 0 {
		return fmt.Errorf("no valid year in %q", strings.Join(args[1:], " "))
	}

	local := engine.NewLocal(cfg)
	r, err := local.ForecastKey(args[0], years, intent.ChartKind(kind))
	if errors.Is(err, respond.ErrUnknownDataset) {
		return fmt.Errorf("%w: %s (known: %s)", err, args[0], strings.Join(local.Registry().Keys(), ", "))
	}
	if err != nil {
		return err
	}
	return printReply(engine.Reply{Text: r.Text, Chart: r.Chart, Source: engine.SourceLocal})
}
