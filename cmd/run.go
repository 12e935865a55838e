package cmd

import (
	"github.com/hamedyaghoobian/smartname/internal/batch"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "run DIRECTORY",
		Short: "Rename files in a directory based on their content",
		Long: `Analyzes every supported file in the directory, asks the model for a
descriptive name, and plans a collision-free set of renames.

By default this is a dry run that only prints the planned renames; pass
--execute to apply them. Files the model or extractors cannot handle are
skipped and reported without affecting the rest of the batch.`,
		Example: `  # Preview renames with the default local Ollama model
  smartname run ~/Downloads

  # Apply kebab-case names using a specific model
  smartname run ~/Downloads --model llava:13b --case kebab --execute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}

			_, registry, engine, err := flags.resolve()
			if err != nil {
				return err
			}

			orchestrator := &batch.Orchestrator{
				Registry: registry,
				Engine:   engine,
				Options: batch.Options{
					Dir:        dir,
					Execute:    flags.execute,
					ReportPath: flags.report,
				},
			}

			_, err = orchestrator.Run(cmd.Context())
			return err
		},
	}

	flags.register(cmd)

	return cmd
}
