package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/danke/internal/app"
	"github.com/yourusername/danke/internal/client"
	"github.com/yourusername/danke/internal/config"
	"github.com/yourusername/danke/internal/errs"
	"github.com/yourusername/danke/internal/logging"
	"github.com/yourusername/danke/internal/output"
	"github.com/yourusername/danke/internal/stash"
)

var (
	socketPath string
	statePath  string
	configPath string
	timeout    string
	noColor    bool
	debugMode  bool

	// Resolved in the root pre-run hook
	settings *config.Settings

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "danke",
	Short: "Stash and unstash windows through yabai",
	Long: `Danke hides windows by minimizing them and brings them back later.

Stashed windows are remembered in a small queue ($HOME/.danke.json), front
first. "cycle" rotates through the queue, "show" brings back the front entry,
and "stash" acts on a single window.`,
	Version:           "0.1.0",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// cycleCmd rotates the stash queue
var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Stash the current window and show the next one",
	Long: `Stashes the window at the front of the queue and brings back the next
live one, moving the stashed window to the back. With a single live entry
its minimized state is toggled.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogged("cycle", func() (stash.Action, error) {
			return app.Run(cmd.Context(), connect, settings.StatePath, app.CycleDecision)
		})
	},
}

// showCmd brings back the front of the queue
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the most recently stashed window",
	Long:  `Brings back the first live window in the queue, leaving it queued.`,
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogged("show", func() (stash.Action, error) {
			return app.Run(cmd.Context(), connect, settings.StatePath, app.ShowDecision)
		})
	},
}

// Stash flags
var (
	stashWindowID uint32
	stashBehavior string
)

// stashCmd acts on a single window
var stashCmd = &cobra.Command{
	Use:   "stash",
	Short: "Stash or restore a single window",
	Long: `Acts on the focused window, or the one given with --window.

  toggle   restore the window if it is queued, stash it otherwise
  stash    minimize the window and queue it
  unstash  restore the window if it is queued`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		behavior, err := stash.ParseBehavior(stashBehavior)
		if err != nil {
			return err
		}
		req := stash.Request{Behavior: behavior}
		if cmd.Flags().Changed("window") {
			req.WindowID = &stashWindowID
		}
		return runLogged("stash", func() (stash.Action, error) {
			return app.RunStash(cmd.Context(), connect, settings.StatePath, req)
		})
	},
}

// windowsCmd lists live windows
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows known to yabai",
	Long:  `Prints every window yabai reports, marking the ones in the queue.`,
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, snap, err := app.Inspect(cmd.Context(), connect, settings.StatePath)
		if err != nil {
			logging.Error().Str("cmd", "windows").Err(err).Msg("failed to inspect")
			return err
		}

		return output.PrintWindowsTable(cmd.OutOrStdout(), snap.Windows, q)
	},
}

// queueCmd is the parent command for queue maintenance
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect and maintain the stash queue",
}

// queueListCmd prints the queue
var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued windows, front first",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, snap, err := app.Inspect(cmd.Context(), connect, settings.StatePath)
		if err != nil {
			logging.Error().Str("cmd", "queue list").Err(err).Msg("failed to inspect")
			return err
		}

		if q.IsEmpty() {
			infoColor.Fprintln(cmd.OutOrStdout(), "Queue is empty")
			return nil
		}
		return output.PrintQueueTable(cmd.OutOrStdout(), q, snap)
	},
}

// queuePruneCmd drops dead entries
var queuePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop queue entries whose window is gone",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Info().Str("cmd", "queue prune").Msg("starting")

		dropped, err := app.Prune(cmd.Context(), connect, settings.StatePath)
		if err != nil {
			logging.Error().Str("cmd", "queue prune").Err(err).Msg("failed to prune")
			return err
		}

		successColor.Fprintf(cmd.OutOrStdout(), "✓ Dropped %d entries\n", len(dropped))
		return nil
	},
}

// queueClearCmd forgets every entry
var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every queued window",
	Long:  `Empties the queue. Stashed windows stay minimized.`,
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Info().Str("cmd", "queue clear").Msg("starting")

		n, err := app.Clear(settings.StatePath)
		if err != nil {
			logging.Error().Str("cmd", "queue clear").Err(err).Msg("failed to clear")
			return err
		}

		successColor.Fprintf(cmd.OutOrStdout(), "✓ Forgot %d entries\n", n)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "yabai socket path (default /tmp/yabai_$USER.socket)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Queue file path (default $HOME/.danke.json)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/danke/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Per-command deadline, e.g. 2s (default none)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	stashCmd.Flags().Uint32Var(&stashWindowID, "window", 0, "Window ID (default focused window)")
	stashCmd.Flags().StringVar(&stashBehavior, "behavior", "toggle", "toggle, stash or unstash")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.Usagef("%v", err)
	})

	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queuePruneCmd)
	queueCmd.AddCommand(queueClearCmd)

	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(stashCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(queueCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		msg, code := errs.Report(err)
		logging.Error().Err(err).Int("exit", code).Msg("exiting")
		printError(msg)
		logging.Close()
		os.Exit(code)
	}
}

// setup resolves the effective settings and opens the log file
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	settings, err = config.Resolve(cfg, config.Overrides{
		Socket:  socketPath,
		State:   statePath,
		Timeout: timeout,
		Debug:   debugMode,
	}, config.CurrentEnvironment())
	if err != nil {
		return err
	}

	logging.SetLevel(settings.LogLevel)
	if err := logging.Init(settings.LogFile); err != nil {
		// Logging is best effort
		if debugMode {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		}
	}

	logging.Debug().
		Str("state", settings.StatePath).
		Dur("timeout", settings.Timeout).
		Msg("settings resolved")
	return nil
}

// connect builds the yabai client. The socket path is resolved here so a
// missing $USER only matters once the queue has loaded.
func connect() (app.Yabai, error) {
	path, err := settings.SocketPath()
	if err != nil {
		return nil, err
	}
	return client.NewClient(path, settings.Timeout), nil
}

// runLogged runs one stash invocation and logs its outcome
func runLogged(name string, run func() (stash.Action, error)) error {
	logging.Info().Str("cmd", name).Msg("starting")

	action, err := run()
	if err != nil {
		logging.Error().Str("cmd", name).Err(err).Str("action", action.String()).Msg("failed")
		return err
	}

	logging.Info().Str("cmd", name).Str("action", action.String()).Msg("done")
	return nil
}

// noArgs rejects positional arguments as a usage error
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errs.Usagef("unexpected argument %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
