package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smartname",
		Short: "Content-aware file renaming and organization using vision language models",
		Long: `Smartname inspects the files in a directory, derives a descriptive name
from each file's content using a vision-capable LLM, and optionally sorts
files into semantic category folders.

It is dry-run by default: nothing on disk changes until --execute is given.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newOrganizeCmd())

	return cmd
}
