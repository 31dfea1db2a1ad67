package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop over the indexed documents",
	Long: `Start an interactive loop that answers questions from the index.
The index and models are loaded once; a failed question is reported
and the loop continues. Type 'exit' or press Ctrl+D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	pipeline, err := newAnswerPipeline(cfg, cfg.Retrieve.TopK)
	if err != nil {
		return err
	}

	fmt.Println("Ask your question (type 'exit' to quit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := pipeline.Answer(query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			continue
		}

		fmt.Printf("\n%s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Println("\nGoodbye.")
	return nil
}
