package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	stats := s.Stats()
	if flags.jsonMode {
		return printJSON(stats)
	}

	var pct float64
	if stats.CapacityBytes > 0 {
		pct = float64(stats.UsedBytes) / float64(stats.CapacityBytes) * 100
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profiles: %d\nUsed:     %d bytes of %d (%.1f%%)\n",
		stats.Profiles, stats.UsedBytes, stats.CapacityBytes, pct)
	return nil
}
