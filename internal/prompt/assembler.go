// Package prompt renders the fixed answer template. The four headings it
// requests are a contract with downstream consumers of the generated text.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"docqa/internal/domain"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// contextSeparator joins retrieved chunk contents in rank order.
const contextSeparator = "\n\n"

type Assembler struct {
	tmpl *template.Template
}

func NewAssembler() (*Assembler, error) {
	content, err := promptTemplates.ReadFile("templates/answer_prompt.txt")
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New("answer").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Assembler{tmpl: tmpl}, nil
}

type promptData struct {
	Context  string
	Question string
}

// Assemble merges the retrieved chunks and the user question into the
// answer prompt. Chunks appear verbatim, in the order given.
func (a *Assembler) Assemble(chunks []domain.Chunk, question string) (string, error) {
	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}

	var buf bytes.Buffer
	err := a.tmpl.Execute(&buf, promptData{
		Context:  strings.Join(contents, contextSeparator),
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
