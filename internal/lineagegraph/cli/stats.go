package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report backend node/edge/session cardinality and storage size",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.open()
			if err != nil {
				return err
			}
			s, err := eng.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "nodes=%d edges=%d sessions=%d storage_bytes=%d\n",
				s.NodeCount, s.EdgeCount, s.SessionCount, s.StorageBytes)
			return nil
		},
	}
}
