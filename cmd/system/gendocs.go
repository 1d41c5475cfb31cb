package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func NewGenDocsCommand() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Generate CLI documentation",
		Long: `Generate documentation for every dentclinic command, as Markdown (default)
or as man pages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = "docs/cli"
			}
			absOutDir, err := filepath.Abs(outDir)
			if err != nil {
				return fmt.Errorf("failed to resolve absolute path for %q: %w", outDir, err)
			}
			if err := os.MkdirAll(absOutDir, 0o755); err != nil {
				return fmt.Errorf("failed to create docs directory %q: %w", absOutDir, err)
			}

			// Root() is the full command tree at runtime.
			root := cmd.Root()
			root.DisableAutoGenTag = true

			switch format {
			case "markdown", "md":
				err = doc.GenMarkdownTree(root, absOutDir)
			case "man":
				err = doc.GenManTree(root, &doc.GenManHeader{Title: "DENTCLINIC", Section: "1"}, absOutDir)
			default:
				return fmt.Errorf("unknown format %q, want markdown or man", format)
			}
			if err != nil {
				return fmt.Errorf("failed to generate CLI docs: %w", err)
			}

			fmt.Printf("CLI docs generated in %s\n", absOutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "docs/cli", "Output directory for generated CLI docs")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown or man")

	return cmd
}
