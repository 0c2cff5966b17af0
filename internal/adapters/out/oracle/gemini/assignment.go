package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const assignmentPrompt = `You are an expert logistics dispatcher for a delivery service in a dense urban environment.
Assign pending orders to available online drivers as efficiently as possible.

Consider:
1. Proximity: prefer the nearest available driver.
2. Existing load: prefer drivers with fewer current orders. A driver may take several orders along a similar route.
3. Efficiency: minimise total travel time and distance for all drivers.
4. Constraints: do not assign orders to a driver who is overloaded or too far away.

Available online drivers:
%s

Pending orders:
%s

Only include assignments you are confident are efficient. If none can be made, return an empty list.`

var assignmentSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"assignments": {
			Type:        "ARRAY",
			Description: "List of optimal assignments of orders to drivers.",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"orderId":  {Type: "STRING", Description: "The unique ID of the order to be assigned."},
					"driverId": {Type: "STRING", Description: "The unique ID of the driver to whom the order is assigned."},
					"reason":   {Type: "STRING", Description: "A brief explanation for why this assignment is optimal."},
				},
				Required: []string{"orderId", "driverId", "reason"},
			},
		},
	},
	Required: []string{"assignments"},
}

// AssignmentOracle asks Gemini for order-to-driver matches with a structured
// JSON response.
type AssignmentOracle struct {
	client *Client
}

func NewAssignmentOracle(client *Client) *AssignmentOracle {
	return &AssignmentOracle{client: client}
}

func (o *AssignmentOracle) ProposeAssignments(
	ctx context.Context,
	req ports.AssignmentRequest,
) ([]ports.AssignmentProposal, error) {
	if len(req.Orders) == 0 || len(req.Drivers) == 0 {
		return []ports.AssignmentProposal{}, nil
	}

	resp, err := o.client.generate(ctx, generateRequest{
		Contents: []content{{Role: ports.RoleUser, Parts: []part{{Text: buildAssignmentPrompt(req)}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   assignmentSchema,
		},
	})
	if err != nil {
		return nil, errs.NewOracleUnavailableError("gemini assignment", err)
	}

	var answer struct {
		Assignments []ports.AssignmentProposal `json:"assignments"`
	}
	if err = json.Unmarshal([]byte(strings.TrimSpace(resp.text())), &answer); err != nil {
		return nil, errs.NewOracleUnavailableError("gemini assignment", fmt.Errorf("malformed answer: %w", err))
	}
	if answer.Assignments == nil {
		return []ports.AssignmentProposal{}, nil
	}
	return answer.Assignments, nil
}

func buildAssignmentPrompt(req ports.AssignmentRequest) string {
	var drivers, orders strings.Builder
	for _, d := range req.Drivers {
		fmt.Fprintf(&drivers, "- Driver ID: %s, Current Location: {lat: %v, lng: %v}, Vehicle: %s, Active orders: %d\n",
			d.ID(), d.Location().Lat(), d.Location().Lng(), d.Vehicle().Type(), req.ActiveLoad[d.ID()])
	}
	for _, ord := range req.Orders {
		pickup, delivery := ord.Pickup(), ord.Delivery()
		fmt.Fprintf(&orders, "- Order ID: %s, Pickup: %s {lat: %v, lng: %v}, Delivery: %s {lat: %v, lng: %v}\n",
			ord.ID(),
			pickup.Text(), pickup.Location().Lat(), pickup.Location().Lng(),
			delivery.Text(), delivery.Location().Lat(), delivery.Location().Lng())
	}
	return fmt.Sprintf(assignmentPrompt, strings.TrimRight(drivers.String(), "\n"), strings.TrimRight(orders.String(), "\n"))
}
