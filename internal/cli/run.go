package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/rebuttal/internal/ai"
	"github.com/mrz1836/rebuttal/internal/config"
	"github.com/mrz1836/rebuttal/internal/debate"
	"github.com/mrz1836/rebuttal/internal/domain"
	rberrors "github.com/mrz1836/rebuttal/internal/errors"
	"github.com/mrz1836/rebuttal/internal/session"
	"github.com/mrz1836/rebuttal/internal/tui"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	rounds          int
	step            bool
	strict          bool
	customCmd       string
	synthesisEngine string
}

// AddRunCommand adds the run command to the parent command.
func AddRunCommand(parent *cobra.Command) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <topic>",
		Short: "Run or resume a debate on a topic",
		Long: `Run starts a new debate session on the given topic, or resumes the
persisted session for that topic if one exists.

In batch mode (the default) all remaining rounds execute in one
invocation. With --step exactly one round runs and the command returns;
re-running the same command later continues from the checkpoint. Either
way, the session completes with a synthesis pass and a Markdown
transcript once the final round has run.

A completed session is a no-op: re-running prints the stored result and
makes zero backend calls.`,
		Example: `  # Run a three round debate end to end
  rebuttal run "should we migrate the queue to NATS"

  # Five rounds, one round per invocation
  rebuttal run --rounds 5 --step "rewrite the importer in-place"

  # Treat any backend failure as fatal
  rebuttal run --strict "drop the legacy v1 API"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return rberrors.ErrMissingTopic
			}
			return runDebate(cmd, topic, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.rounds, "rounds", "r", 0,
		"number of debate rounds (2-50, default from config)")
	cmd.Flags().BoolVar(&flags.step, "step", false,
		"run exactly one round and exit, resumable later")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"treat backend failures as fatal instead of degrading to filler")
	cmd.Flags().StringVar(&flags.customCmd, "custom-cmd", "",
		"custom backend command for the creator (prompt on stdin)")
	cmd.Flags().StringVar(&flags.synthesisEngine, "synthesis-engine", "",
		"engine for the final synthesis (claude, gemini, custom)")

	parent.AddCommand(cmd)
}

// runDebate wires the collaborators and executes the scheduler.
func runDebate(cmd *cobra.Command, topic string, flags *runFlags) error {
	ctx := cmd.Context()
	logger := GetLogger()

	cfg, err := loadRunConfig(cmd, flags)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	rounds := flags.rounds
	if rounds == 0 {
		rounds = cfg.Debate.Rounds
	}

	opts := debate.Options{
		Rounds: rounds,
		Step:   flags.step,
		Strict: cfg.Debate.Strict,
	}

	result, err := engine.Run(ctx, topic, opts)
	if err != nil {
		return err
	}

	printRunResult(cmd, result)

	return nil
}

// loadRunConfig builds the effective configuration with run flag overrides.
func loadRunConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	overrides := &config.Config{}
	if cmd.Flags().Changed("strict") {
		overrides.Debate.Strict = flags.strict
	}
	if flags.synthesisEngine != "" {
		overrides.Debate.SynthesisEngine = flags.synthesisEngine
	}
	if flags.customCmd != "" {
		overrides.Backends.Custom.Command = flags.customCmd
	}

	cfg, err := config.LoadWithOverrides(cmd.Context(), overrides)
	if err != nil {
		return nil, rberrors.Wrap(err, "failed to load configuration")
	}

	// Flag-only strict must survive even when no config file sets it.
	if cmd.Flags().Changed("strict") {
		cfg.Debate.Strict = flags.strict
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildEngine assembles the store, backend registry, selector and
// scheduler from the effective configuration.
func buildEngine(cfg *config.Config, logger zerolog.Logger) (*debate.Engine, error) {
	store, err := session.NewStore("", logger)
	if err != nil {
		return nil, err
	}

	executor := &ai.DefaultExecutor{}

	registry := ai.NewRegistry()
	registry.Register(domain.EngineClaude, ai.NewClaudeRunner(cfg.Backends.Claude, executor, logger))
	registry.Register(domain.EngineGemini, ai.NewGeminiRunner(cfg.Backends.Gemini, executor, logger))
	if cfg.Backends.Custom.Command != "" {
		registry.Register(domain.EngineCustom, ai.NewCustomRunner(cfg.Backends.Custom, executor, logger))
	}

	selector := ai.NewSelector(cfg, registry, nil, logger)

	turns := debate.NewTurnExecutor(selector, logger)
	synth := debate.NewSynthesisStage(selector, logger)

	return debate.NewEngine(store, selector, turns, synth, logger), nil
}

// printRunResult writes a human summary of the invocation to stdout.
func printRunResult(cmd *cobra.Command, result *debate.Result) {
	out := cmd.OutOrStdout()
	sess := result.Session

	if result.AlreadyCompleted {
		fmt.Fprintln(out, tui.WarnStyle.Render("Debate already completed; nothing to do."))
		fmt.Fprintln(out, tui.SessionSummary(sess))
		return
	}

	fmt.Fprintln(out, tui.SessionSummary(sess))

	printNewTurns(out, result)

	if sess.Completed {
		if sess.Synthesis != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, tui.TitleStyle.Render("Final Synthesis"))
			fmt.Fprintln(out, sess.Synthesis)
		}
		if result.TranscriptPath != "" {
			fmt.Fprintf(out, "\nTranscript written to %s\n", result.TranscriptPath)
		}
		return
	}

	fmt.Fprintf(out, "\nCheckpoint saved after round %d of %d; run again to continue.\n",
		sess.CurrentRound, sess.TotalRounds)
}

// printNewTurns writes the turns executed by this invocation, each under a
// styled role header.
func printNewTurns(out io.Writer, result *debate.Result) {
	sess := result.Session
	turns := 2 * result.RoundsRun
	if turns <= 0 || turns > len(sess.Transcript) {
		return
	}

	start := len(sess.Transcript) - turns
	for i, text := range sess.Transcript[start:] {
		round := (start+i)/2 + 1
		role := domain.RoleCreator
		if (start+i)%2 == 1 {
			role = domain.RoleCritic
		}
		header := fmt.Sprintf("Round %d, %s", round, role.Label())
		fmt.Fprintf(out, "\n%s\n%s\n", tui.RoleStyle(role).Render(header), text)
	}
}
