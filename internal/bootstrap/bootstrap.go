package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/xtree/internal/app"
	"github.com/chmouel/xtree/internal/buildinfo"
	"github.com/chmouel/xtree/internal/completion"
	"github.com/chmouel/xtree/internal/config"
	"github.com/chmouel/xtree/internal/log"
	"github.com/chmouel/xtree/internal/theme"
)

// runProgram runs the TUI; tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewCommand builds the xtree command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "xtree",
		Usage:     "Browse a dependency tree in the terminal",
		ArgsUsage: "<tree-file>",
		Version:   buildinfo.Version(),
		Flags:     globalFlags(),
		Action:    runTUI,

		EnableShellCompletion: true,
		ShellComplete:         completeArgs,
		Commands: []*urfavecli.Command{
			versionCommand(),
		},
	}
}

// Run executes the command line in args.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

// completeArgs suggests flag values after a flag, flags and subcommands
// otherwise.
func completeArgs(_ context.Context, cmd *urfavecli.Command) {
	prev := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		prev = args[len(args)-1]
	}
	for _, suggestion := range completion.Suggest(prev) {
		fmt.Fprintln(cmd.Root().Writer, suggestion)
	}
}

func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := io.WriteString(cmd.Root().Writer, buildinfo.Summary())
			return err
		},
	}
}

// runTUI is the default action that launches the TUI.
func runTUI(_ context.Context, cmd *urfavecli.Command) error {
	if cmd.Bool("list-themes") {
		printThemes(cmd.Root().Writer)
		return nil
	}

	if cmd.NArg() != 1 {
		return errors.New("expected exactly one tree file argument")
	}
	path, err := config.ExpandPath(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("error expanding tree path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open tree file: %w", err)
	}

	log.Reset()
	log.Printf("starting xtree %s on %s", buildinfo.Version(), path)
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		_ = log.SetFile("")
		return err
	}
	// flag or config file, whichever won in loadCLIConfig
	origin := ""
	if cmd.String("debug-log") == "" {
		origin = "from config "
	}
	setupDebugLog(cfg.DebugLog, origin)
	cfg.ResolveTheme()
	log.Printf("theme %s, sort %s, transition %s", cfg.Theme, cfg.Sort, cfg.Transition)

	err = runProgram(app.NewModel(cfg, path, nil))
	if closeErr := log.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", closeErr)
	}
	if err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// setupDebugLog points the debug log at path, or discards buffered messages
// when path is empty.
func setupDebugLog(path, origin string) {
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %s%q: %v\n", origin, path, err)
	}
}

// loadCLIConfig loads the configuration file and layers the flags on top.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		log.Printf("config: %v", err)
		cfg = config.DefaultConfig()
	}

	if name := cmd.String("theme"); name != "" {
		normalized := theme.Normalize(name)
		if normalized == "" {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		cfg.Theme = normalized
	}
	if value := cmd.String("sort"); value != "" {
		normalized := config.NormalizeSort(value)
		if normalized == "" {
			return nil, fmt.Errorf("unknown sorting %q", value)
		}
		cfg.Sort = normalized
	}
	if value := cmd.String("transition"); value != "" {
		normalized := config.NormalizeTransition(value)
		if normalized == "" {
			return nil, fmt.Errorf("unknown transition backend %q", value)
		}
		cfg.Transition = normalized
	}
	if cmd.Bool("no-compress") {
		cfg.Compressed = false
	}
	if cmd.Bool("watch") {
		cfg.AutoReload = true
	}
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		cfg.DebugLog = debugLog
	}

	// CLI config overrides have the highest precedence
	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	return cfg, nil
}

func printThemes(w io.Writer) {
	names := theme.AvailableThemes()
	sort.Strings(names)
	fmt.Fprintln(w, "Available themes:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
