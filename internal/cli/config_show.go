package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/rebuttal/internal/config"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
)

// AddConfigCommand adds the config command group to the parent command.
func AddConfigCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect rebuttal configuration",
	}

	cmd.AddCommand(newConfigShowCmd())

	parent.AddCommand(cmd)
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Show prints the fully resolved configuration after merging defaults,
the global config file, and REBUTTAL_* environment variables.`,
		Example: `  rebuttal config show`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return rberrors.Wrap(err, "failed to load configuration")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return rberrors.Wrap(err, "failed to marshal configuration")
			}

			home, err := config.HomeDir()
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "# home: %s\n", home)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))

			return nil
		},
	}
}
