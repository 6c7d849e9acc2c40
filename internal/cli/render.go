package cli

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/httputil"
	"github.com/matzehuels/argwheel/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string        // output file (single format) or base path
	vizType  string        // sunburst or nodelink
	formats  []string      // svg, json, pdf, png, dot
	zoom     []argument.ID // nodes to zoom into, outermost first
	width    float64       // frame width in pixels
	height   float64       // frame height in pixels
	labels   bool          // draw text on arcs
	detailed bool          // detailed nodelink labels
	noCache  bool          // disable the artifact cache
	refresh  bool          // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var zoom []string
	opts := renderOpts{vizType: pipeline.DefaultVizType}

	cmd := &cobra.Command{
		Use:   "render [dataset.json | url]",
		Short: "Render a debate to SVG, JSON, PDF, PNG or DOT",
		Long: `Render a debate dataset as a sunburst (default) or a node-link diagram.

Use --zoom to render a sub-argument: each id is zoomed into in turn, so
"--zoom A,A1" shows the view reached by clicking A and then A1.`,
		Example: `  argwheel render debate.json
  argwheel render debate.json -f svg,png --labels
  argwheel render debate.json --zoom A -o a.svg
  argwheel render debate.json -t nodelink -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if len(opts.formats) == 0 {
				opts.formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(opts.vizType); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "stdout output needs a single format")
			}
			for _, id := range zoom {
				if id = strings.TrimSpace(id); id != "" {
					opts.zoom = append(opts.zoom, argument.ID(id))
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: sunburst, nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png, dot (comma-separated)")
	cmd.Flags().StringSliceVar(&zoom, "zoom", nil, "node ids to zoom into, in order (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default from config)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw proposition labels on arcs")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show type, speaker and score (nodelink)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spinner *Spinner
	if needsRaster(opts.formats) {
		spinner = newSpinnerWithContext(ctx, "Rasterizing...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Dataset:  input,
		Zoom:     opts.zoom,
		VizType:  opts.vizType,
		Formats:  opts.formats,
		Width:    opts.width,
		Height:   opts.height,
		Labels:   opts.labels,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if spinner != nil {
		spinner.Stop()
		if spinner.Canceled() {
			c.Logger.Warn("render interrupted")
		}
	}
	if err != nil {
		return err
	}
	if len(result.View.Stack) > 1 {
		c.Logger.Info("zoomed", "focus", result.View.Focus(), "depth", len(result.View.Stack)-1)
	}

	paths, err := writeArtifacts(result.Artifacts, opts.formats, input, opts.output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(paths)))
	if opts.output == "-" {
		return nil
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.Dropped, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact next to its base path and returns the
// written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	formats = append([]string(nil), formats...)
	sort.Strings(formats)

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		file := outputPath(output, input, format, len(formats))
		out, err := openOutput(file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", file)
		}
		_, werr := out.Write(data)
		cerr := out.Close()
		if werr != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, werr, "write %s", file)
		}
		if cerr != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, cerr, "close %s", file)
		}
		paths = append(paths, file)
	}
	return paths, nil
}

// outputPath picks the file for one format. A single format honors output
// as given; several formats share its base path.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; a URL input
// yields its file name in the working directory. If output has a format
// extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if httputil.IsURL(input) {
			if u, err := url.Parse(input); err == nil {
				input = path.Base(u.Path)
			}
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func needsRaster(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPDF || f == pipeline.FormatPNG {
			return true
		}
	}
	return false
}
