package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a profile",
		Long: `Show prints the full profile, payload included.
With no argument, shows the active profile.

Example:
  satchel show 0195c7a2-8f3e-7000-8000-000000000000
  satchel show`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	var p *types.Profile
	if len(args) == 1 {
		p, err = s.Load(args[0])
	} else {
		p, err = s.LoadActive()
	}
	if err == types.ErrNotFound {
		if len(args) == 1 {
			return exitError(exitUserError, fmt.Sprintf("profile %q not found", args[0]))
		}
		return exitError(exitUserError, "no active profile set")
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	return printJSON(p)
}
