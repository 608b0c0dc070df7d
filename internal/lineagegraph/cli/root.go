// Package cli implements the lineagectl command tree: a thin cobra
// front end over the engine, for operators inspecting or seeding a
// lineagegraph store from a shell.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/config"
	"github.com/kiosk404/lineagegraph/internal/lineagegraph/engine"
)

// rootState carries the loaded Options and the lazily-opened Engine
// shared by every subcommand invoked within one process run.
type rootState struct {
	opts *config.Options
	eng  *engine.Engine
}

func (s *rootState) open() (*engine.Engine, error) {
	if s.eng != nil {
		return s.eng, nil
	}
	eng, err := engine.Open(s.opts.ToOpenOptions(engine.Config{}))
	if err != nil {
		return nil, err
	}
	s.eng = eng
	return eng, nil
}

// NewRootCommand builds the `lineagectl` command tree.
func NewRootCommand() *cobra.Command {
	state := &rootState{opts: config.NewOptions()}

	cmd := &cobra.Command{
		Use:   "lineagectl",
		Short: "lineagectl inspects and seeds a lineagegraph conversational store",
		Long: `
		lineagectl is a CLI front end over the lineagegraph storage engine.

		It creates sessions, records prompts/responses, and queries stored
		conversational lineage directly against an on-disk store, without
		going through any network-facing service.
		`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
				loaded, err := config.LoadFromFile(cfgFile)
				if err != nil {
					return err
				}
				state.opts = loaded
			}
			if errs := state.opts.Validate(); len(errs) > 0 {
				return fmt.Errorf("invalid configuration: %v", errs[0])
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if state.eng != nil {
				return state.eng.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	state.opts.AddFlags(flags)
	flags.String("config", "", "Path to a lineagectl config file (yaml/json/toml).")
	_ = viper.BindPFlags(flags)

	cmd.AddCommand(
		newSessionCommand(state),
		newPromptCommand(state),
		newResponseCommand(state),
		newStatsCommand(state),
	)
	return cmd
}
