package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func newSessionCommand(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create and inspect sessions",
	}
	cmd.AddCommand(newSessionCreateCommand(state), newSessionShowCommand(state))
	return cmd
}

func newSessionCreateCommand(state *rootState) *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new, empty session",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.open()
			if err != nil {
				return err
			}
			metadata := map[string]string{}
			for _, t := range tags {
				metadata[t] = "true"
			}
			sid, err := eng.CreateSession(cmd.Context(), metadata)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sid.String())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Metadata tag to attach to the new session (repeatable).")
	return cmd
}

func newSessionShowCommand(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session and its node count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.open()
			if err != nil {
				return err
			}
			sid, err := ids.ParseSessionID(args[0])
			if err != nil {
				return err
			}
			session, err := eng.GetSession(cmd.Context(), sid)
			if err != nil {
				return err
			}
			count, err := eng.CountSessionNodes(cmd.Context(), sid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s created_at=%s nodes=%d tags=%v\n",
				session.ID, session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), count, session.Tags)
			return nil
		},
	}
	return cmd
}
