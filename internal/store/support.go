package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SupportTicket is an IT support desk request.
type SupportTicket struct {
	ID           int64  `json:"id"`
	TicketID     string `json:"ticket_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	RaisedBy     string `json:"raised_by"`
	AssignedTo   string `json:"assigned_to"`
	CreatedDate  string `json:"created_date"`
	ResolvedDate string `json:"resolved_date,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
}

// SupportTicketFilter narrows SupportTickets. Zero-value fields are
// ignored.
type SupportTicketFilter struct {
	RaisedBy string
	Status   string
	Category string
}

// SupportTickets lists support desk requests, newest first.
func (s *Store) SupportTickets(ctx context.Context, f SupportTicketFilter) ([]SupportTicket, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT id, ticket_id, title, description, category, priority, status,
		raised_by, assigned_to, created_date, COALESCE(resolved_date,''), COALESCE(resolution,'')
		FROM helpdesk_tickets WHERE 1=1`)
	if f.RaisedBy != "" {
		sb.WriteString(" AND LOWER(raised_by) LIKE ?")
		params = append(params, "%"+strings.ToLower(f.RaisedBy)+"%")
	}
	if f.Status != "" {
		sb.WriteString(" AND LOWER(status)=?")
		params = append(params, strings.ToLower(f.Status))
	}
	if f.Category != "" {
		sb.WriteString(" AND LOWER(category) LIKE ?")
		params = append(params, "%"+strings.ToLower(f.Category)+"%")
	}
	sb.WriteString(" ORDER BY created_date DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("list support tickets: %w", err)
	}
	defer rows.Close()

	var tickets []SupportTicket
	for rows.Next() {
		var t SupportTicket
		if err := rows.Scan(&t.ID, &t.TicketID, &t.Title, &t.Description, &t.Category,
			&t.Priority, &t.Status, &t.RaisedBy, &t.AssignedTo, &t.CreatedDate,
			&t.ResolvedDate, &t.Resolution); err != nil {
			return nil, fmt.Errorf("scan support ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// CreateSupportTicket opens a new support desk request assigned to the IT
// team. The ticket id is TKT- plus a zero-padded sequence number.
func (s *Store) CreateSupportTicket(ctx context.Context, title, description, category, priority, raisedBy string) (*SupportTicket, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM helpdesk_tickets").Scan(&count); err != nil {
		return nil, fmt.Errorf("count support tickets: %w", err)
	}
	ticketID := fmt.Sprintf("TKT-%03d", count+1)
	today := time.Now().Format("2006-01-02")

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO helpdesk_tickets
		 (ticket_id,title,description,category,priority,status,raised_by,assigned_to,created_date)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		ticketID, title, description, category, priority, "OPEN", raisedBy, "IT Team", today)
	if err != nil {
		return nil, fmt.Errorf("create support ticket: %w", err)
	}
	id, _ := res.LastInsertId()
	return &SupportTicket{
		ID: id, TicketID: ticketID, Title: title, Description: description,
		Category: category, Priority: priority, Status: "OPEN",
		RaisedBy: raisedBy, AssignedTo: "IT Team", CreatedDate: today,
	}, nil
}
