package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
)

func init() {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the forecastable datasets",
		Args:  cobra.NoArgs,
		RunE:  runDatasets,
	}
	RootCmd.AddCommand(cmd)
}

type datasetView struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Unit   string          `json:"unit"`
	Scope  string          `json:"scope"`
	Points []dataset.Point `json:"points"`
}

func runDatasets(cmd *cobra.Command, args []string) error {
	reg := dataset.NewDefaultRegistry(dataset.DefaultTables())

	views := make([]datasetView, 0, len(reg.All()))
	for _, d := range reg.All() {
		views = append(views, datasetView{Key: d.Key, Label: d.Label, Unit: d.Unit, Scope: d.Scope, Points: d.Points()})
	}
	if jsonOutput() {
		return printJSON(views)
	}

	for _, v := range views {
		span := "no data"
		if n := len(v.Points); n > 0 {
			span = fmt.Sprintf("%d-%d, latest %s %s", v.Points[0].Year, v.Points[n-1].Year, respond.Float(v.Points[n-1].Value), v.Unit)
		}
		fmt.Printf("%-22s %s (%s)\n", v.Key, v.Label, span)
	}
	return nil
}
