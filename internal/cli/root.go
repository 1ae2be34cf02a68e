// Package cli wires configuration, storage and the task list into the
// dragtodo command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/nhle/dragtodo/internal/model"
	"github.com/nhle/dragtodo/internal/store"
	"github.com/nhle/dragtodo/internal/todolist"
)

// options holds the persistent flags and output streams shared by every
// command.
type options struct {
	configPath string
	dbPath     string
	backend    string
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

// Execute runs the CLI with the given arguments and returns the process
// exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		var verr *todolist.ValidationError
		if errors.As(err, &verr) {
			_, _ = fmt.Fprintln(stderr, verr.Message)
		} else {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// terminal UI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "dragtodo",
		Short: "A drag-and-drop todo list for the terminal",
		Long: "dragtodo keeps an ordered todo list. Run it without arguments for the\n" +
			"interactive board, or use the subcommands for scripting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), o)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&o.configPath, "config", model.DefaultConfigPath(), "Path to the config file")
	cmd.PersistentFlags().StringVar(&o.dbPath, "db", "", "SQLite database path (overrides storage.path)")
	cmd.PersistentFlags().StringVar(&o.backend, "backend", "", "Storage backend: sqlite or keyring (overrides storage.backend)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log recovered problems to stderr")

	cmd.AddCommand(
		newAddCmd(o),
		newListCmd(o),
		newDoneCmd(o),
		newRemoveCmd(o),
		newMoveCmd(o),
		newGridCmd(o),
		newConfigCmd(o),
	)

	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func (o *options) loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.dbPath != "" {
		cfg.Storage.Path = model.ExpandHome(o.dbPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is an open task list and the storage behind it.
type session struct {
	cfg  *model.AppConfig
	kv   store.Store
	list *todolist.Store
}

func (s *session) Close() error {
	return s.kv.Close()
}

// open loads config, opens storage and the task list. logger receives
// the task list's recovered problems.
func (o *options) open(ctx context.Context, logger *log.Logger) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	list, err := todolist.Open(ctx, kv, todolist.Options{
		Seed:   todolist.SeedTasks(cfg.Seed, nil),
		Logger: logger,
	})
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	return &session{cfg: cfg, kv: kv, list: list}, nil
}

// logger is where subcommands send the task list's log output.
func (o *options) logger() *log.Logger {
	if o.verbose {
		return log.New(o.stderr, "dragtodo: ", 0)
	}
	return log.New(io.Discard, "", 0)
}

// withSession runs fn against an open session and closes it afterwards.
func (o *options) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	s, err := o.open(ctx, o.logger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return fn(ctx, s)
}
