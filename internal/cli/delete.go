package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile",
		Long: `Delete removes a profile from the store. A deletion snapshot is kept
in the backup ledger (subject to the retention cap) unless backups are
disabled, so a freshly deleted profile can still come back through recovery.

With --all, removes every key the store owns: profiles, backups, and the
active pointer. Irreversible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args, purge)
		},
	}
	cmd.Flags().BoolVar(&purge, "all", false, "clear the entire store, backups included")
	return cmd
}

func runDelete(cmd *cobra.Command, args []string, purge bool) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	if purge {
		if len(args) != 0 {
			return exitError(exitUserError, "--all takes no profile id")
		}
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Store cleared.")
		return nil
	}

	if len(args) != 1 {
		return exitError(exitUserError, "delete requires a profile id (or --all)")
	}
	if err := s.Delete(args[0]); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
