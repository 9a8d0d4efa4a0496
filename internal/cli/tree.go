package cli

import (
	"github.com/spf13/cobra"

	fio "github.com/matzehuels/framecast/pkg/io"
	"github.com/matzehuels/framecast/pkg/pipeline"
	"github.com/matzehuels/framecast/pkg/render/treeviz"
)

// treeCommand creates the tree command for drawing converted documents.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "tree <document.json>",
		Short: "Draw a converted design document as a node tree",
		Example: `  framecast tree page.design.json
  framecast tree page.design.json --format dot -o tree.dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTreeFormat(format); err != nil {
				return err
			}
			doc, err := fio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			out := output
			if out == "" {
				out = defaultOutput(args[0], ".tree."+format)
			}
			c.Logger.Debug("drawing tree", "nodes", doc.Len(), "format", format)
			if err := writeTree(doc, format, treeviz.Options{Detailed: detailed, MaxDepth: maxDepth}, out); err != nil {
				return err
			}
			printSuccess("Drew %s", StyleHighlight.Render(doc.Name))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, dot, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input>.tree.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show sizes and fills in labels")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "stop below this depth (0 draws everything)")

	return cmd
}
