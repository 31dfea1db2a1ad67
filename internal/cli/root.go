package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document-grounded question answering over a local corpus",
	Long: `docqa indexes a directory of text documents for semantic retrieval and
answers natural-language questions grounded in the retrieved passages.

Example usage:
  docqa build ./data/raw_docs          # Chunk, embed and index documents
  docqa ask -q "How do I report theft?"  # Answer a single question
  docqa search -q "stolen phone"       # Inspect retrieval without generation
  docqa chat                           # Interactive question loop`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// API keys typically live in a local .env file; a missing file is fine.
		godotenv.Load()

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docqa.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
