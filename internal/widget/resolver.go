package widget

import (
	"context"
	"strings"
)

// fallbackReply covers the pathological case of a rule list without a
// default entry. DefaultOptions always carries one, so integrators only
// hit this by replacing the rules with a broken set.
const fallbackReply = "Thanks for your message!"

// Resolve runs the keyword policy over the input text: the first rule in
// configured order whose keyword is a case-insensitive substring of the
// input wins. The default rule is skipped during the scan; when nothing
// matches, its reply is returned with the placeholder replaced by the
// verbatim, original-case input.
func (r Rules) Resolve(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range r {
		if rule.Keyword == defaultKeyword || rule.Keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(rule.Keyword)) {
			return rule.Reply
		}
	}
	if reply, ok := r.Default(); ok {
		return strings.ReplaceAll(reply, Placeholder, input)
	}
	return fallbackReply
}

// resolve turns user text into a bot reply. Remote resolution runs first
// when a responder is wired; any responder failure falls through to the
// keyword policy and is never surfaced to the user.
func (c *Controller) resolve(ctx context.Context, input string) string {
	if c.responder != nil {
		reply, err := c.responder.Reply(ctx, input, c.History())
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
		if err != nil {
			c.log.Warn().Err(err).Msg("remote responder failed, using keyword policy")
		}
	}
	return c.Options().Responses.Resolve(input)
}
