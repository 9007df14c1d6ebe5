package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rberrors "github.com/mrz1836/rebuttal/internal/errors"
	"github.com/mrz1836/rebuttal/internal/session"
	"github.com/mrz1836/rebuttal/internal/tui"
)

// AddStatusCommand adds the status command to the parent command.
func AddStatusCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status <topic>",
		Short: "Show the persisted state of a debate session",
		Long: `Status prints the checkpoint for a topic's session without making
any backend calls: round progress, the frozen creator engine, and
whether any turns were degraded to filler text.`,
		Example: `  rebuttal status "should we migrate the queue to NATS"`,
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

			sess, existed, err := store.Load(cmd.Context(), topic, 0)
			if err != nil {
				return err
			}
			if !existed {
				return fmt.Errorf("%w: no session for topic %q", rberrors.ErrSessionNotFound, topic)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.SessionSummary(sess))

			return nil
		},
	}

	parent.AddCommand(cmd)
}
