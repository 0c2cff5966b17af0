package gemini

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var emptyParameters = &schema{Type: "OBJECT", Properties: map[string]*schema{}}

var coPilotTools = []tool{{FunctionDeclarations: []functionDeclaration{
	{
		Name:        "getNextStop",
		Description: "Gets the address of the driver's next delivery stop.",
		Parameters:  emptyParameters,
	},
	{
		Name:        "optimizeMyRoute",
		Description: "Optimizes the current delivery route to find the most efficient path through the remaining stops.",
		Parameters:  emptyParameters,
	},
	{
		Name:        "readCustomerInstructions",
		Description: "Reads the customer's special delivery instructions for the current or next order.",
		Parameters:  emptyParameters,
	},
	{
		Name:        "markOrderAsDelivered",
		Description: "Marks the current order as delivered and starts the proof of delivery process.",
		Parameters:  emptyParameters,
	},
	{
		Name:        "sendMessageToDispatch",
		Description: "Sends a text message to the dispatch center.",
		Parameters: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"message": {Type: "STRING", Description: "The content of the message to send to dispatch."},
			},
			Required: []string{"message"},
		},
	},
}}}

// CoPilotOracle is the driver assistant backed by Gemini function calling.
type CoPilotOracle struct {
	client *Client
}

func NewCoPilotOracle(client *Client) *CoPilotOracle {
	return &CoPilotOracle{client: client}
}

func (o *CoPilotOracle) Converse(
	ctx context.Context,
	fleet ports.CoPilotContext,
	history []ports.CoPilotTurn,
) (ports.CoPilotReply, error) {
	contents := make([]content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, content{Role: turn.Role, Parts: []part{{Text: turn.Text}}})
	}

	resp, err := o.client.generate(ctx, generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction(fleet)}}},
		Tools:             coPilotTools,
	})
	if err != nil {
		return ports.CoPilotReply{}, errs.NewOracleUnavailableError("gemini copilot", err)
	}

	if call := resp.functionCall(); call != nil {
		return ports.CoPilotReply{FunctionCall: &ports.FunctionCall{Name: call.Name, Args: call.Args}}, nil
	}
	return ports.CoPilotReply{Text: strings.TrimSpace(resp.text())}, nil
}

func systemInstruction(fleet ports.CoPilotContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI co-pilot for a delivery driver named %s.\n", fleet.DriverName)
	b.WriteString("Help the driver complete their tasks safely and efficiently. ")
	b.WriteString("You can answer questions about their current route and perform actions on their behalf. ")
	b.WriteString("Be brief and clear, the driver is probably driving.\n\n")
	fmt.Fprintf(&b, "Driver status: %s\n", fleet.Status)
	fmt.Fprintf(&b, "Driver location: {lat: %v, lng: %v}\n\n", fleet.Location.Lat(), fleet.Location.Lng())
	b.WriteString("Orders assigned to the driver (in optimized order):\n")
	if len(fleet.Stops) == 0 {
		b.WriteString("No orders in progress.\n")
	}
	for i, stop := range fleet.Stops {
		instructions := stop.Instructions
		if instructions == "" {
			instructions = "None"
		}
		fmt.Fprintf(&b, "- Order #%d (ID: %s): Deliver to %s for %s. Instructions: %s\n",
			i+1, stop.OrderID, stop.DeliveryAddress, stop.CustomerName, instructions)
	}
	return b.String()
}
