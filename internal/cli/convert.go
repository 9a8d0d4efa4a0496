package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/host"
	fio "github.com/matzehuels/framecast/pkg/io"
	"github.com/matzehuels/framecast/pkg/pipeline"
	"github.com/matzehuels/framecast/pkg/progress"
	"github.com/matzehuels/framecast/pkg/render/treeviz"
)

// convertOpts holds the flags of the convert command.
type convertOpts struct {
	output  string
	tree    string
	title   string
	width   float64
	height  float64
	timeout time.Duration
	noCache bool
	refresh bool
	tui     bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <elements.json>",
		Short: "Convert extracted page elements into a design document",
		Long: `Convert reads the elements extracted from a rendered page and writes the
resulting design document as JSON.

The input is either a bare array of elements or an object with "elements",
"title" and "viewport" fields. Images are fetched and cached; use --no-cache
to skip the cache and --refresh to rebuild a cached document.`,
		Example: `  # Convert into page.design.json
  framecast convert page.json

  # Pick the output path and draw the node tree next to it
  framecast convert page.json -o out/home.json --tree svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default: <input>.design.json)")
	cmd.Flags().StringVar(&opts.tree, "tree", "", "also draw the node tree: svg, dot, png")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (default: from input)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width (default: from input)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height (default: from input)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "processing time limit (default: from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when a cached document exists")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show an interactive progress view")

	return cmd
}

// runConvert executes the conversion and writes its outputs.
func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	if opts.tree != "" {
		if err := pipeline.ValidateTreeFormat(opts.tree); err != nil {
			return err
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	page, err := fio.ImportElements(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := cfg.PipelineOptions()
	popts.Logger = c.Logger
	popts.Refresh = opts.refresh
	popts.Title = opts.title
	if opts.width > 0 && opts.height > 0 {
		popts.Viewport = element.Viewport{Width: opts.width, Height: opts.height}
	}
	if opts.timeout > 0 {
		popts.MaxProcessingTime = opts.timeout
	}

	sw := newStopwatch(c.Logger)
	conv, err := c.convertWithProgress(ctx, runner, page, popts, opts.tui)
	if err != nil {
		return err
	}
	sw.done("conversion complete")

	out := opts.output
	if out == "" {
		out = defaultOutput(input, ".design.json")
	}
	if err := fio.ExportDocument(conv.Document, out); err != nil {
		return err
	}

	if conv.Result != nil {
		printStats(conv.Result.Stats, false)
	} else {
		printStats(pipeline.Stats{}, true)
	}
	printFile(out)

	if opts.tree != "" {
		treePath := strings.TrimSuffix(out, filepath.Ext(out)) + ".tree." + opts.tree
		if err := writeTree(conv.Document, opts.tree, treeviz.Options{}, treePath); err != nil {
			return err
		}
		printFile(treePath)
	} else {
		printNewline()
		printNextStep("Draw the node tree", fmt.Sprintf("%s tree %s", appName, out))
	}
	return nil
}

// convertWithProgress runs the conversion behind the spinner or, with tui,
// the bubbletea progress view, and ends on a status line either way.
func (c *CLI) convertWithProgress(ctx context.Context, runner *pipeline.Runner, page *element.Page, opts pipeline.Options, tui bool) (*pipeline.Conversion, error) {
	name := StyleHighlight.Render(page.Name())
	if tui {
		var conv *pipeline.Conversion
		err := runProgressView(ctx, "Converting "+page.Name(), func(ctx context.Context, r progress.Reporter) error {
			opts.Progress = r
			var err error
			conv, err = runner.Convert(ctx, page, opts)
			return err
		})
		if err != nil {
			printFailure(ferrors.Categorize(err))
			return nil, err
		}
		printSuccess("Converted %s", name)
		return conv, nil
	}

	spinner := newSpinnerWithContext(ctx, "Converting "+page.Name()+"...")
	spinner.Start()
	opts.Progress = spinner
	conv, err := runner.Convert(ctx, page, opts)
	switch {
	case err == nil:
		spinner.StopWithSuccess("Converted " + name)
	case spinner.Cancelled():
		spinner.StopWithError("Cancelled " + name)
	default:
		cat := ferrors.Categorize(err)
		spinner.StopWithError(cat.Title)
		printCategoryDetails(cat)
	}
	return conv, err
}

// printFailure prints a categorized conversion error.
func printFailure(cat ferrors.Category) {
	printError("%s", cat.Title)
	printCategoryDetails(cat)
}

func printCategoryDetails(cat ferrors.Category) {
	if cat.Details != "" {
		printDetail("%s", cat.Details)
	}
	for _, s := range cat.Suggestions {
		printDetail("  %s", s)
	}
}

// defaultOutput derives an output path from the input path.
func defaultOutput(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+suffix)
}

// writeTree renders the document's node tree in format and writes it to path.
func writeTree(doc *host.Document, format string, opts treeviz.Options, path string) error {
	dot := treeviz.ToDOT(doc, opts)
	var (
		data []byte
		err  error
	)
	switch format {
	case pipeline.FormatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = treeviz.RenderSVG(dot)
	case pipeline.FormatPNG:
		data, err = treeviz.RenderPNG(dot)
	default:
		err = pipeline.ValidateTreeFormat(format)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
