package cmd

import (
	"github.com/hamedyaghoobian/smartname/internal/batch"
	"github.com/hamedyaghoobian/smartname/internal/classify"
	"github.com/spf13/cobra"
)

func newOrganizeCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var rename bool
	var categories []string
	var categoriesFile string

	cmd := &cobra.Command{
		Use:   "organize DIRECTORY",
		Short: "Sort files into category folders based on their content",
		Long: `Classifies every supported file into one category from a closed label
set and plans moves into per-category folders. With --rename, files are
also given content-derived names inside their category folder.

Answers outside the label set fall back to the default label, so the model
can never invent new folders. Dry-run by default; pass --execute to apply.`,
		Example: `  # Preview organization with the built-in categories
  smartname organize ~/Downloads

  # Organize and rename with custom categories
  smartname organize ~/Downloads --rename --categories invoices,receipts,other --execute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}

			provider, registry, engine, err := flags.resolve()
			if err != nil {
				return err
			}

			labels := categories
			if categoriesFile != "" {
				labels, err = loadCategoriesFile(categoriesFile)
				if err != nil {
					return err
				}
			}

			classifier := classify.New(provider, engine.Model, labels)
			classifier.Temperature = flags.temperature
			classifier.Timeout = flags.timeout

			orchestrator := &batch.Orchestrator{
				Registry:   registry,
				Engine:     engine,
				Classifier: classifier,
				Options: batch.Options{
					Dir:             dir,
					Execute:         flags.execute,
					Organize:        true,
					RenameInFolders: rename,
					ReportPath:      flags.report,
				},
			}

			_, err = orchestrator.Run(cmd.Context())
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&rename, "rename", false, "Also rename files within their category folders")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Custom category labels (comma-separated)")
	cmd.Flags().StringVar(&categoriesFile, "categories-file", "", "YAML file holding the category label list")

	return cmd
}
