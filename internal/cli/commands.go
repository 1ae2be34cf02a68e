package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/nhle/dragtodo/internal/model"
)

func newAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Append a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				task, err := s.list.Add(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(o.stdout, "Added %q (%s)\n", task.Name, task.ID)
				return nil
			})
		},
	}
}

func newListCmd(o *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the todos in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				tasks := s.list.Tasks()
				if jsonOutput {
					data, err := json.Marshal(tasks)
					if err != nil {
						return fmt.Errorf("encoding task list: %w", err)
					}
					_, _ = fmt.Fprintln(o.stdout, string(data))
					return nil
				}
				printTasks(o, tasks)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored JSON array")
	return cmd
}

func printTasks(o *options, tasks []model.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(o.stdout, "Nothing to do.")
		return
	}

	width := 0
	for _, t := range tasks {
		if n := runewidth.StringWidth(t.Name); n > width {
			width = n
		}
	}
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(t.Name))
		_, _ = fmt.Fprintf(o.stdout, "%2d  [%s]  %s%s  %s\n", i+1, mark, t.Name, pad, t.ID)
	}
}

func newDoneCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				id := resolveID(s.list.Tasks(), args[0])
				if err := s.list.ToggleCompleted(ctx, id); err != nil {
					return err
				}
				task, ok := s.list.Get(id)
				if !ok {
					_, _ = fmt.Fprintf(o.stderr, "No todo matches %q\n", args[0])
					return nil
				}
				state := "open"
				if task.Completed {
					state = "done"
				}
				_, _ = fmt.Fprintf(o.stdout, "%q is %s\n", task.Name, state)
				return nil
			})
		},
	}
}

func newRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				id := resolveID(s.list.Tasks(), args[0])
				task, ok := s.list.Get(id)
				if err := s.list.Remove(ctx, id); err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintf(o.stderr, "No todo matches %q\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(o.stdout, "Removed %q\n", task.Name)
				return nil
			})
		},
	}
}

func newMoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <target-id>",
		Short: "Move a todo to the position of another",
		Long: "move takes the first todo out of the list and puts it where the\n" +
			"second one is, shifting the todos in between by one.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				tasks := s.list.Tasks()
				moved := resolveID(tasks, args[0])
				target := resolveID(tasks, args[1])
				if err := s.list.Reorder(ctx, moved, target); err != nil {
					return err
				}
				printTasks(o, s.list.Tasks())
				return nil
			})
		},
	}
}

func newGridCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "grid [on|off]",
		Short:     "Show or set the grid display mode",
		ValidArgs: []string{"on", "off"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(ctx context.Context, s *session) error {
				if len(args) == 1 {
					if err := s.list.SetDisplayMode(ctx, args[0] == "on"); err != nil {
						return err
					}
				}
				state := "off"
				if s.list.Grid() {
					state = "on"
				}
				_, _ = fmt.Fprintf(o.stdout, "grid %s\n", state)
				return nil
			})
		},
	}
}

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintln(o.stdout, o.configPath)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(o.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", o.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", o.configPath, err)
			}

			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			if err := model.SaveConfig(o.configPath, cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(o.stdout, "Wrote %s\n", o.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
