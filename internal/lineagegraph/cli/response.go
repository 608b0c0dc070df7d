package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/graph"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/ids"
)

func newResponseCommand(state *rootState) *cobra.Command {
	var promptID, content string
	var promptTokens, completionTokens uint32

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Record a model response against a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := state.open()
			if err != nil {
				return err
			}
			pid, err := ids.ParseNodeID(promptID)
			if err != nil {
				return err
			}
			usage := graph.NewTokenUsage(promptTokens, completionTokens)
			id, err := eng.AddResponse(cmd.Context(), pid, content, usage, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&promptID, "prompt", "", "Prompt node ID this response answers (required).")
	cmd.Flags().StringVar(&content, "content", "", "Response text (required).")
	cmd.Flags().Uint32Var(&promptTokens, "prompt-tokens", 0, "Prompt tokens consumed.")
	cmd.Flags().Uint32Var(&completionTokens, "completion-tokens", 0, "Completion tokens produced.")
	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
