package llm

// MockLLM is a canned-response generator for tests and offline runs.
type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

func (m *MockLLM) Generate(prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockLLM) ModelName() string {
	return "mock"
}
