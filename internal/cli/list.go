package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Long: `List prints the summary of every stored profile.

Example:
  satchel list
  satchel list --json`,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, err := s.ListSummaries()
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	activeID, err := s.ActiveID()
	if err != nil {
		return fmt.Errorf("read active profile: %w", err)
	}

	if flags.jsonMode {
		return printJSON(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored.")
		return nil
	}

	printSummaryTable(cmd, summaries, activeID)
	return nil
}

// printSummaryTable prints profile summaries in a human-readable table,
// marking the active profile with an asterisk.
func printSummaryTable(cmd *cobra.Command, summaries []types.ProfileSummary, activeID string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, " \tID\tNAME\tPROFESSION\tLEVEL\tBREED\tFACTION\tVERSION\tUPDATED")
	for _, s := range summaries {
		marker := " "
		if s.ID == activeID {
			marker = "*"
		}
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			marker, s.ID, s.Name, s.Profession, s.Level, s.Breed, s.Faction, s.Version, updated)
	}
	w.Flush()
}
