package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rebuttal/internal/session"
)

// AddListCommand adds the list command to the parent command.
func AddListCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List persisted debate sessions",
		Long: `List prints all persisted sessions, most recently updated first,
with their round progress and completion state.`,
		Example: `  rebuttal list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			store, err := session.NewStore("", logger)
			if err != nil {
				return err
			}

			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(sessions) == 0 {
				fmt.Fprintln(out, "No debate sessions found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tSTATUS\tROUNDS\tENGINE\tUPDATED\tTOPIC")
			for _, sess := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
					sess.Slug,
					string(sess.Status()),
					sess.CurrentRound,
					sess.TotalRounds,
					sess.CreatorEngine,
					sess.UpdatedAt.Format("2006-01-02 15:04"),
					truncateTopic(sess.Topic, 48),
				)
			}
			return w.Flush()
		},
	}

	parent.AddCommand(cmd)
}

// truncateTopic shortens long topics for the table view.
func truncateTopic(topic string, limit int) string {
	runes := []rune(topic)
	if len(runes) <= limit {
		return topic
	}
	return string(runes[:limit-1]) + "…"
}
