package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newActiveCmd() *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "active [id]",
		Short: "Show or set the active profile",
		Long: `Active prints the active profile id, sets it when an id is given,
or clears it with --clear.

Example:
  satchel active
  satchel active 0195c7a2-8f3e-7000-8000-000000000000
  satchel active --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActive(cmd, args, clear)
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the active profile")
	return cmd
}

func runActive(cmd *cobra.Command, args []string, clear bool) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	switch {
	case clear:
		if len(args) != 0 {
			return exitError(exitUserError, "--clear takes no profile id")
		}
		if err := s.SetActive(""); err != nil {
			return fmt.Errorf("clear active profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Active profile cleared.")

	case len(args) == 1:
		if err := s.SetActive(args[0]); err != nil {
			return fmt.Errorf("set active profile: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active profile set to %s\n", args[0])

	default:
		id, err := s.ActiveID()
		if err != nil {
			return fmt.Errorf("read active profile: %w", err)
		}
		if id == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No active profile set.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
