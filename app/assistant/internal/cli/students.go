package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/roster"
)

func init() {
	cmd := &cobra.Command{
		Use:   "students [query]",
		Short: "List roster records, by flags or a free-text query",
		RunE:  runStudents,
	}

	cmd.Flags().String("major", "", "Exact major name")
	cmd.Flags().Int("year", 0, "Year of study (1-4)")
	cmd.Flags().Bool("at-risk", false, "Only students on probation")
	cmd.Flags().Bool("honors", false, "Only honors students, best GPA first")
	cmd.Flags().IntP("limit", "l", 0, "Max results")

	RootCmd.AddCommand(cmd)
}

func runStudents(cmd *cobra.Command, args []string) error {
	major, _ := cmd.Flags().GetString("major")
	year, _ := cmd.Flags().GetInt("year")
	atRisk, _ := cmd.Flags().GetBool("at-risk")
	honors, _ := cmd.Flags().GetBool("honors")
	limit, _ := cmd.Flags().GetInt("limit")

	r := engine.NewLocal(cfg).Roster()

	var search *intent.StudentSearch
	switch {
	case len(args) > 0:
		s, ok := intent.ParseStudentSearch(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("query does not describe a student search: %q", strings.Join(args, " "))
		}
		search = s
	case major != "":
		search = &intent.StudentSearch{Predicate: intent.Predicate{Kind: intent.PredicateMajor, Text: major}}
	case year > 0:
		search = &intent.StudentSearch{Predicate: intent.Predicate{Kind: intent.PredicateYear, Year: year}}
	case atRisk:
		search = &intent.StudentSearch{Predicate: intent.Predicate{Kind: intent.PredicateAtRisk}}
	case honors:
		search = &intent.StudentSearch{Predicate: intent.Predicate{Kind: intent.PredicateHonors}}
	}
	if search != nil && limit > 0 {
		search.Limit = limit
	}

	if !jsonOutput() && search != nil {
		display(respond.Students(r, search).Text)
		return nil
	}

	var list []roster.Student
	if search != nil {
		list = respond.Select(r, search.Predicate)
		if search.Limit > 0 && len(list) > search.Limit {
			list = list[:search.Limit]
		}
	} else {
		list = r.All()
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
	}

	if jsonOutput() {
		return printJSON(list)
	}
	for _, s := range list {
		fmt.Printf("%s  %-24s %-22s ปี %d  GPA %.2f  %s\n", s.ID, s.Name, s.Major, s.Year, s.GPA, s.Status())
	}
	return nil
}
