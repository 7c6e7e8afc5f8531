package respond

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/AbdulManan133/chatbot-Ui/internal/config"
	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
)

// Model answers with an Ark-hosted chat model through an eino chain.
type Model struct {
	botName string
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewModel compiles the prompt/model chain once; per-message work is a
// single Invoke.
func NewModel(ctx context.Context, cfg config.ArkConfig, botName string) (*Model, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compiling responder chain: %w", err)
	}

	return &Model{botName: botName, chain: runnable}, nil
}

// Reply generates a model response with the same ten-entry history window
// as the HTTP responder.
func (m *Model) Reply(ctx context.Context, message string, history []chat.Message) (string, error) {
	input := map[string]any{
		"system":  m.systemPrompt(),
		"history": historyMessages(history),
		"query":   message,
	}

	response, err := m.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("running responder chain: %w", err)
	}
	return response.Content, nil
}

func (m *Model) systemPrompt() string {
	return fmt.Sprintf(
		"You are %s, a concise and friendly assistant embedded in a website chat widget. Keep replies short, helpful and plain-text.",
		m.botName,
	)
}

func historyMessages(history []chat.Message) []*schema.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) == 0 {
		return nil
	}

	out := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Sender {
		case chat.SenderUser:
			out = append(out, schema.UserMessage(msg.Content))
		case chat.SenderBot:
			out = append(out, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return out
}
