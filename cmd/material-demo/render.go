package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-material-widgets/internal/demo"
	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
	"github.com/goliatone/go-material-widgets/pkg/render"
)

const (
	formShowcase = "showcase"
	formModel    = "model"
)

type renderOptions struct {
	renderer  string
	output    string
	staticURL string
	db        string
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:       "render [showcase|model]",
		Short:     "Render a demo form as a static HTML page",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{formShowcase, formModel},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formShowcase
			if len(args) == 1 {
				name = args[0]
			}
			out := cmd.OutOrStdout()
			if opts.output != "" && opts.output != "-" {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return runRender(cmd.Context(), flags, opts, name, out)
		},
	}
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "page layout (material, default)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&opts.staticURL, "static-url", "/static/", "prefix for relative media paths")
	cmd.Flags().StringVar(&opts.db, "db", ":memory:", "SQLite database providing relation choices")
	return cmd
}

func runRender(ctx context.Context, flags *globalFlags, opts *renderOptions, name string, out io.Writer) error {
	logger, err := newLogger(flags.logLevel)
	if err != nil {
		return err
	}
	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	pages, err := pageRenderers(logger, settings)
	if err != nil {
		return err
	}
	renderer, err := pages.Resolve(opts.renderer)
	if err != nil {
		return err
	}

	var form *forms.Form
	switch name {
	case formShowcase:
		form, err = demo.NewForm(material.WithSettings(settings), material.WithLogger(logger))
		if err != nil {
			return err
		}
	case formModel:
		db, catalog, err := openDemoStore(ctx, logger, opts.db)
		if err != nil {
			return err
		}
		defer db.Close()
		mf, err := demo.NewModelForm(ctx, db, catalog, material.WithSettings(settings), material.WithLogger(logger))
		if err != nil {
			return err
		}
		form = mf.Form
	default:
		return fmt.Errorf("unknown form %q", name)
	}

	page, err := renderer.Render(ctx, form, render.RenderOptions{
		Title:     "Material Widgets",
		Method:    "POST",
		StaticURL: opts.staticURL,
	})
	if err != nil {
		return err
	}
	_, err = out.Write(page)
	return err
}
