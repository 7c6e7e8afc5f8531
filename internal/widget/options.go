package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Placeholder is the literal substring in the default reply template that
// gets replaced by the verbatim user input.
const Placeholder = "{message}"

const defaultKeyword = "default"

// Rule maps a trigger keyword to its canned reply.
type Rule struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Reply   string `json:"reply" yaml:"reply"`
}

// Rules is an ordered rule list. Order is observable behavior: the first
// rule whose keyword matches wins, so rules are never carried in a map.
type Rules []Rule

// Default returns the reply template of the default rule.
func (r Rules) Default() (string, bool) {
	for _, rule := range r {
		if rule.Keyword == defaultKeyword {
			return rule.Reply, true
		}
	}
	return "", false
}

// Clone returns an independent copy of the rule list.
func (r Rules) Clone() Rules {
	if r == nil {
		return nil
	}
	return append(Rules(nil), r...)
}

// UnmarshalYAML decodes either a mapping (keyword: reply, document order
// preserved) or a sequence of {keyword, reply} entries.
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Rules, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			out = append(out, Rule{Keyword: node.Content[i].Value, Reply: node.Content[i+1].Value})
		}
		*r = out
		return nil
	case yaml.SequenceNode:
		type plain Rule
		out := make(Rules, 0, len(node.Content))
		for _, item := range node.Content {
			var entry plain
			if err := item.Decode(&entry); err != nil {
				return err
			}
			out = append(out, Rule(entry))
		}
		*r = out
		return nil
	default:
		return fmt.Errorf("responses: expected mapping or sequence, got yaml kind %d", node.Kind)
	}
}

// UnmarshalJSON decodes either an object (insertion order preserved via
// the token stream, since encoding/json maps would lose it) or an array
// of {keyword, reply} entries.
func (r *Rules) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		type plain Rule
		var entries []plain
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		out := make(Rules, 0, len(entries))
		for _, entry := range entries {
			out = append(out, Rule(entry))
		}
		*r = out
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("responses: expected object or array")
	}
	var out Rules
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("responses: non-string key %v", keyTok)
		}
		var reply string
		if err := dec.Decode(&reply); err != nil {
			return fmt.Errorf("responses: reply for %q: %w", key, err)
		}
		out = append(out, Rule{Keyword: key, Reply: reply})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

// Options is the widget configuration surface. A value is immutable once
// merged; reconfiguration produces a new value via Merge.
type Options struct {
	BotName        string
	WelcomeMessage string
	APIEndpoint    string
	Responses      Rules
	TypingDelay    time.Duration
	MessageDelay   time.Duration
	AutoOpen       bool
	Theme          string
}

// DefaultOptions mirrors the stock widget: a friendly bot with a small
// canned-response set. The default rule is always present.
func DefaultOptions() Options {
	return Options{
		BotName:        "ChatBot",
		WelcomeMessage: "Hi! How can I help you today?",
		Responses: Rules{
			{Keyword: "hello", Reply: "Hello! How can I assist you?"},
			{Keyword: "help", Reply: "I'm here to help! What do you need assistance with?"},
			{Keyword: "bye", Reply: "Goodbye! Have a great day!"},
			{Keyword: "thanks", Reply: "You're welcome!"},
			{Keyword: defaultKeyword, Reply: `Thanks for your message! You said: "` + Placeholder + `"`},
		},
		TypingDelay:  time.Second,
		MessageDelay: 500 * time.Millisecond,
		AutoOpen:     false,
		Theme:        "light",
	}
}

// Overrides carries a partial configuration. Nil fields keep the current
// value. Merge semantics are shallow: Responses replaces the whole rule
// list, it is never merged entry by entry.
type Overrides struct {
	BotName        *string `json:"botName" yaml:"bot_name"`
	WelcomeMessage *string `json:"welcomeMessage" yaml:"welcome_message"`
	APIEndpoint    *string `json:"apiEndpoint" yaml:"api_endpoint"`
	Responses      Rules   `json:"responses" yaml:"responses"`
	TypingDelayMS  *int    `json:"typingDelay" yaml:"typing_delay_ms"`
	MessageDelayMS *int    `json:"messageDelay" yaml:"message_delay_ms"`
	AutoOpen       *bool   `json:"autoOpen" yaml:"auto_open"`
	Theme          *string `json:"theme" yaml:"theme"`
}

// Merge returns a new Options with the overrides applied field by field.
func (o Options) Merge(ov Overrides) Options {
	merged := o
	merged.Responses = o.Responses.Clone()
	if ov.BotName != nil {
		merged.BotName = *ov.BotName
	}
	if ov.WelcomeMessage != nil {
		merged.WelcomeMessage = *ov.WelcomeMessage
	}
	if ov.APIEndpoint != nil {
		merged.APIEndpoint = *ov.APIEndpoint
	}
	if ov.Responses != nil {
		merged.Responses = ov.Responses.Clone()
	}
	if ov.TypingDelayMS != nil && *ov.TypingDelayMS >= 0 {
		merged.TypingDelay = time.Duration(*ov.TypingDelayMS) * time.Millisecond
	}
	if ov.MessageDelayMS != nil && *ov.MessageDelayMS >= 0 {
		merged.MessageDelay = time.Duration(*ov.MessageDelayMS) * time.Millisecond
	}
	if ov.AutoOpen != nil {
		merged.AutoOpen = *ov.AutoOpen
	}
	if ov.Theme != nil {
		merged.Theme = *ov.Theme
	}
	return merged
}

// LoadOptionsFile reads a YAML overrides file and merges it over the
// defaults. An empty path or missing file yields the defaults unchanged.
func LoadOptionsFile(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return opts, fmt.Errorf("parsing widget options %s: %w", path, err)
	}
	return opts.Merge(ov), nil
}
