package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/atriumhq/atrium/internal/store"
)

// ticketRequest is the JSON shape the generator is asked to extract for a
// new support desk ticket.
type ticketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

func (d *Dispatcher) supportDesk(ctx context.Context, env *Envelope, query, q, user string) error {
	if !containsAny(q, "create", "raise", "log", "open", "new", "submit") {
		tickets, err := d.store.SupportTickets(ctx, store.SupportTicketFilter{})
		if err != nil {
			return err
		}
		env.Data = map[string]any{"tickets": tickets}
		env.Answer = formatSupportTickets(tickets)
		return nil
	}

	prompt := fmt.Sprintf("Extract IT helpdesk ticket details from: %q. "+
		"Return a JSON with: title, description, category (Hardware/Software/Network/Access), "+
		"priority (LOW/MEDIUM/HIGH/CRITICAL). JSON only.", query)

	var req ticketRequest
	raw, err := d.gen.Complete(ctx, "Return JSON only.", prompt, nil)
	if err != nil || decodeJSONBlock(raw, &req) != nil {
		req = ticketRequest{
			Title:       truncate(query, 80),
			Description: query,
			Category:    "General",
			Priority:    "MEDIUM",
		}
	}

	raisedBy := user
	if raisedBy == "" {
		raisedBy = "Employee"
	}
	created, err := d.store.CreateSupportTicket(ctx, req.Title, req.Description, req.Category, req.Priority, raisedBy)
	if err != nil {
		return err
	}
	env.Data = created
	env.Answer = fmt.Sprintf("IT ticket **%s** created! The IT team responds within 4 hours "+
		"for HIGH priority and 24 hours for MEDIUM/LOW.", created.TicketID)
	return nil
}

var jsonFenceRe = regexp.MustCompile("```(?:json)?")

// decodeJSONBlock parses generator output that may be wrapped in a markdown
// code fence.
func decodeJSONBlock(raw string, v any) error {
	clean := strings.TrimSpace(jsonFenceRe.ReplaceAllString(raw, ""))
	return json.Unmarshal([]byte(clean), v)
}
