package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pbaille/aura/internal/classifier"
	"github.com/pbaille/aura/internal/config"
	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/exercise"
	"github.com/pbaille/aura/internal/resources"
	"github.com/pbaille/aura/internal/schema"
	"github.com/pbaille/aura/internal/session"
	"github.com/pbaille/aura/internal/store"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aura",
		Short: "Mood journal and well-being companion",
		Long: `Aura journals how you feel, notices the tone of what you write and
points you to short resources. Run it without arguments for the interactive menu.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			pacer := exercise.NewScaled(cfg.Pace)
			return a.session(cmd.InOrStdin(), cmd.OutOrStdout(), pacer).Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding profile, mood log and resources")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "mood log storage: json or sqlite")
	rootCmd.PersistentFlags().Float64Var(&cfg.Pace, "pace", cfg.Pace, "pause multiplier for conversational pacing (0 disables pauses)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log diagnostics to stderr")

	rootCmd.AddCommand(checkinCmd(cfg))
	rootCmd.AddCommand(progressCmd(cfg))
	rootCmd.AddCommand(resourcesCmd(cfg))
	rootCmd.AddCommand(logCmd(cfg))
	rootCmd.AddCommand(showCmd(cfg))
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(schemaCmd())

	return rootCmd
}

// app holds everything loaded from the data directory
type app struct {
	logger     *slog.Logger
	profile    *store.Profile
	moods      *store.MoodLog
	catalog    *resources.Catalog
	classifier *classifier.Classifier
}

func openApp(cfg *config.Config, stderr io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	clf := classifier.New()

	profile, err := store.OpenProfile(cfg.ProfilePath())
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	moods, err := store.OpenMoodLog(backend, clf)
	if err != nil {
		backend.Close()
		return nil, err
	}

	catalog, err := resources.Open(cfg.ResourcesPath(), resources.DefaultFile())
	if err != nil {
		moods.Close()
		return nil, err
	}

	logger.Debug("data loaded",
		"dir", cfg.DataDir,
		"backend", backend.Location(),
		"entries", moods.Len(),
		"topics", len(catalog.Topics()),
	)

	return &app{
		logger:     logger,
		profile:    profile,
		moods:      moods,
		catalog:    catalog,
		classifier: clf,
	}, nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return store.OpenSQLite(cfg.MoodLogDBPath())
	default:
		return store.NewJSONFile(cfg.MoodLogPath()), nil
	}
}

func (a *app) Close() error {
	return a.moods.Close()
}

func (a *app) session(in io.Reader, out io.Writer, pacer exercise.Pacer) *session.Session {
	return session.New(a.profile, a.moods, a.catalog, a.classifier, session.Options{
		In:     in,
		Out:    out,
		Logger: a.logger,
		Pacer:  pacer,
	})
}

func checkinCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin [text]",
		Short: "Record one mood entry without the menu",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.session(nil, cmd.OutOrStdout(), exercise.NoPause).Record(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if outcome.Entry != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %s (%s)\n", shortID(outcome.Entry.ID), outcome.Entry.Sentiment)
			}
			return nil
		},
	}
}

func progressCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Summarize recent mood entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New("-n must be > 0")
			}
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			a.session(nil, cmd.OutOrStdout(), exercise.NoPause).ShowProgress(limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", session.ProgressWindow, "number of recent entries to summarize")
	return cmd
}

func resourcesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "resources [topic]",
		Short: "List resource topics, or the articles of one topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.session(nil, cmd.OutOrStdout(), exercise.NoPause)
			if len(args) == 0 {
				s.ListTopics()
				return nil
			}
			s.ShowTopic(strings.Join(args, " "))
			return nil
		},
	}
}

func logCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recent mood entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New("-n must be > 0")
			}
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			entries := a.moods.Recent(limit)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries yet. Use 'aura checkin' or the menu to add one.")
				return nil
			}

			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  %-8s  %s\n", shortID(e.ID), entryDate(e), e.Sentiment, truncate(e.Entry, 60))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func showCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show entry details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.moods.Find(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", entry.ID)
			fmt.Fprintf(out, "Created:   %s\n", entryDate(entry))
			fmt.Fprintf(out, "Sentiment: %s\n", entry.Sentiment)
			fmt.Fprintf(out, "Entry:\n%s\n", entry.Entry)
			return nil
		},
	}
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [text]",
		Short: "Print the sentiment score of some text without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := classifier.New().Classify(strings.Join(args, " "))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Compound:  %.4f\n", result.Score)
			fmt.Fprintf(out, "Sentiment: %s\n", result.Sentiment)
			fmt.Fprintf(out, "Crisis:    %t\n", result.Crisis)
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [" + strings.Join(schema.Names(), "|") + "]",
		Short:     "Print the JSON Schema of a data file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: schema.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := schema.Marshal(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

func shortID(id string) string {
	if id == "" {
		return "--------"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func entryDate(e domain.MoodLogEntry) string {
	t, err := e.Time()
	if err != nil {
		return e.Timestamp
	}
	return t.Local().Format("2006-01-02 15:04")
}

// truncate flattens s to one line of at most max runes
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
