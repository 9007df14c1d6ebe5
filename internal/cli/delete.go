package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rberrors "github.com/mrz1836/rebuttal/internal/errors"
	"github.com/mrz1836/rebuttal/internal/session"
)

// AddDeleteCommand adds the delete command to the parent command.
func AddDeleteCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <topic>",
		Aliases: []string{"rm"},
		Short:   "Delete a debate session and its transcript",
		Long: `Delete removes the persisted session state and transcript artifact for
a topic. The next run on the same topic starts a fresh debate.`,
		Example: `  rebuttal delete "should we migrate the queue to NATS"`,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return rberrors.ErrMissingTopic
			}

			logger := GetLogger()

			store, err := session.NewStore("", logger)
			if err != nil {
				return err
			}

			slug := session.Slug(topic)
			if err := store.Delete(cmd.Context(), slug); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %q.\n", slug)

			return nil
		},
	}

	parent.AddCommand(cmd)
}
