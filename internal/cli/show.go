package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	rberrors "github.com/mrz1836/rebuttal/internal/errors"
	"github.com/mrz1836/rebuttal/internal/session"
)

// AddShowCommand adds the show command to the parent command.
func AddShowCommand(parent *cobra.Command) {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <topic>",
		Short: "Render the transcript of a debate session",
		Long: `Show renders the Markdown transcript for a topic's session in the
terminal. Use --raw to print the unstyled Markdown instead, for piping
into other tools.`,
		Example: `  rebuttal show "should we migrate the queue to NATS"
  rebuttal show --raw "should we migrate the queue to NATS" > debate.md`,
		Args: cobra.ArbitraryArgs,
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

			markdown := session.RenderTranscript(sess, time.Now().UTC())

			if raw {
				fmt.Fprint(cmd.OutOrStdout(), markdown)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return rberrors.Wrap(err, "failed to create markdown renderer")
			}

			rendered, err := renderer.Render(markdown)
			if err != nil {
				return rberrors.Wrap(err, "failed to render transcript")
			}

			fmt.Fprint(cmd.OutOrStdout(), rendered)

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print raw markdown without terminal styling")

	parent.AddCommand(cmd)
}
