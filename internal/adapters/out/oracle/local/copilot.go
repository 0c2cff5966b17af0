package local

import (
	"context"
	"strings"

	"dispatch/internal/core/ports"
)

// KeywordCoPilot maps the driver's last utterance onto the co-pilot functions
// by keyword. Anything it does not recognise gets a short help text.
type KeywordCoPilot struct{}

func NewKeywordCoPilot() KeywordCoPilot {
	return KeywordCoPilot{}
}

const keywordHelp = "I can tell you your next stop, optimize your route, read customer instructions, " +
	"mark an order as delivered or send a message to dispatch."

var messagePrefixes = []string{"tell dispatch ", "message dispatch ", "send message "}

func (KeywordCoPilot) Converse(ctx context.Context, _ ports.CoPilotContext, history []ports.CoPilotTurn) (ports.CoPilotReply, error) {
	if err := ctx.Err(); err != nil {
		return ports.CoPilotReply{}, err
	}

	var last string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == ports.RoleUser {
			last = strings.TrimSpace(history[i].Text)
			break
		}
	}
	lower := strings.ToLower(last)

	for _, prefix := range messagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return call("sendMessageToDispatch", map[string]any{"message": strings.TrimSpace(last[len(prefix):])}), nil
		}
	}

	switch {
	case strings.Contains(lower, "optimi"):
		return call("optimizeMyRoute", nil), nil
	case strings.Contains(lower, "instruction"):
		return call("readCustomerInstructions", nil), nil
	case strings.Contains(lower, "deliver"):
		return call("markOrderAsDelivered", nil), nil
	case strings.Contains(lower, "next"):
		return call("getNextStop", nil), nil
	default:
		return ports.CoPilotReply{Text: keywordHelp}, nil
	}
}

func call(name string, args map[string]any) ports.CoPilotReply {
	return ports.CoPilotReply{FunctionCall: &ports.FunctionCall{Name: name, Args: args}}
}
