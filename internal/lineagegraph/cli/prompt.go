package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func newPromptCommand(state *rootState) *cobra.Command {
	var sessionID, content, model string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Record a prompt against a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.open()
			if err != nil {
				return err
			}
			sid, err := ids.ParseSessionID(sessionID)
			if err != nil {
				return err
			}
			var meta *graph.PromptMetadata
			if model != "" {
				m := graph.DefaultPromptMetadata()
				m.Model = model
				meta = &m
			}
			id, err := eng.AddPrompt(cmd.Context(), sid, content, meta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID to attach the prompt to (required).")
	cmd.Flags().StringVar(&content, "content", "", "Prompt text (required).")
	cmd.Flags().StringVar(&model, "model", "", "Model name to record in the prompt's metadata.")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
