package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.Ask(cmd.Context(), uuid.NewString(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printReply(r)
}

func printReply(r engine.Reply) error {
	if jsonOutput() {
		return printJSON(r)
	}
	display(r.Text)
	if r.Chart != nil {
		fmt.Println(describeChart(r.Chart))
	}
	return nil
}

func describeChart(s *chart.Spec) string {
	names := make([]string, len(s.Data.Datasets))
	for i, d := range s.Data.Datasets {
		names[i] = d.Label
	}
	return fmt.Sprintf("[chart %s: %d labels, series: %s]", s.ChartType, len(s.Data.Labels), strings.Join(names, ", "))
}
