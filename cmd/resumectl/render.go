package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"resume-forge/internal/adapter/objectstore"
	"resume-forge/internal/model"
	"resume-forge/internal/render"
	infra "resume-forge/pkg/infrastructure"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	file     string
	template string
	out      string
	html     bool
	dataDir  string
	chrome   string
	timeout  time.Duration
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a snapshot to PDF or HTML",
		Long: `Render a stored resume snapshot with one of the built-in templates.

Example:
  resumectl render --file data/users/<uid>/resume_data_20240501_103000.json --template modern --out resume.pdf
  resumectl render --file snapshot.json --html --out preview.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "Snapshot JSON file")
	cmd.Flags().StringVar(&opts.template, "template", "classic", "Template: classic, modern or minimalist")
	cmd.Flags().StringVar(&opts.out, "out", "resume.pdf", "Output file")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Write self-contained HTML instead of PDF")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", envOr("DATA_DIR", "data"), "Root of locally stored profile pictures")
	cmd.Flags().StringVar(&opts.chrome, "chrome", os.Getenv("CHROME_PATH"), "Chrome executable (auto-detected when empty)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "PDF render timeout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runRender(ctx context.Context, opts renderOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := os.ReadFile(opts.file)
	if err != nil {
		return errors.Wrapf(err, "read %s", opts.file)
	}
	doc, err := model.Decode(raw)
	if err != nil {
		return errors.Wrapf(err, "decode %s", opts.file)
	}
	html, err := render.NewEmbedded().Render(opts.template, doc)
	if err != nil {
		return err
	}
	html = render.InlineImages(ctx, html, doc, objectstore.NewLocal(opts.dataDir))

	var out []byte
	if opts.html {
		out = []byte(html)
	} else {
		out, err = infra.NewChromedpRenderer(opts.chrome, opts.timeout).RenderHTMLToPDF(ctx, html)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(opts.out, out, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", opts.out)
	}
	_, err = fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", opts.out, len(out))
	return err
}
