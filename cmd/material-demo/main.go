// Command material-demo serves, renders and fills the Material widget demo
// forms.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalFlags struct {
	logLevel     string
	settingsPath string
	themePath    string
	themeVariant string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "material-demo",
		Short: "Material Design widgets for server side forms",
		Long: `material-demo showcases Material Components styled form widgets.

It serves the widget showcase and the model form over HTTP, renders them
as static pages, or fills them interactively in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.settingsPath, "settings", "", "YAML file with material_css and material_js")
	pf.StringVar(&flags.themePath, "theme", "", "go-theme manifest (YAML) supplying the Material assets")
	pf.StringVar(&flags.themeVariant, "theme-variant", "", "theme variant to select")

	root.AddCommand(
		serveCmd(flags),
		renderCmd(flags),
		fillCmd(flags),
		versionCmd(),
	)
	return root
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "", "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
