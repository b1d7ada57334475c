package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-material-widgets/internal/demo"
	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
	"github.com/goliatone/go-material-widgets/pkg/renderers/tui"
)

type fillOptions struct {
	format      string
	maxAttempts int
	db          string
	save        bool
}

func fillCmd(flags *globalFlags) *cobra.Command {
	opts := &fillOptions{}
	cmd := &cobra.Command{
		Use:       "fill [showcase|model]",
		Short:     "Fill a demo form interactively in the terminal",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{formShowcase, formModel},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formShowcase
			if len(args) == 1 {
				name = args[0]
			}
			driver := tui.NewSurveyDriver(cmd.ErrOrStderr())
			return runFill(cmd.Context(), flags, opts, name, driver, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 3, "validation rounds before giving up")
	cmd.Flags().StringVar(&opts.db, "db", ":memory:", "SQLite database for the model form")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the filled model form to the database")
	return cmd
}

func runFill(ctx context.Context, flags *globalFlags, opts *fillOptions, name string, driver tui.PromptDriver, out io.Writer) error {
	logger, err := newLogger(flags.logLevel)
	if err != nil {
		return err
	}
	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	renderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(opts.format)),
		tui.WithMaxAttempts(opts.maxAttempts),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	materialOpts := []material.Option{material.WithSettings(settings), material.WithLogger(logger)}
	var (
		form      *forms.Form
		modelForm *forms.ModelForm
	)
	switch name {
	case formShowcase:
		if form, err = demo.NewForm(materialOpts...); err != nil {
			return err
		}
	case formModel:
		db, catalog, err := openDemoStore(ctx, logger, opts.db)
		if err != nil {
			return err
		}
		defer db.Close()
		if modelForm, err = demo.NewModelForm(ctx, db, catalog, materialOpts...); err != nil {
			return err
		}
		form = modelForm.Form
	default:
		return fmt.Errorf("unknown form %q", name)
	}

	result, err := renderer.Render(ctx, form, render.RenderOptions{Title: "Material Widgets"})
	if err != nil {
		return err
	}
	if _, err := out.Write(result); err != nil {
		return err
	}

	if opts.save && modelForm != nil {
		id, err := modelForm.Save(ctx)
		if err != nil {
			return err
		}
		logger.Info("record saved", slog.Int64("id", id))
	}
	return nil
}
