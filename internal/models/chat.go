package models

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type ChatCompletion struct {
	ID      string       `json:"id,omitempty"`
	Model   string       `json:"model,omitempty"`
	Choices []ChatChoice `json:"choices"`
}

// Answer returns the content of the first choice, or "" when there is none.
func (c ChatCompletion) Answer() string {
	if len(c.Choices) == 0 {
		return ""
	}

	return c.Choices[0].Message.Content
}
