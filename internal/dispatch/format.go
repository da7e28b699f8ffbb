package dispatch

import (
	"fmt"
	"strings"

	"github.com/atriumhq/atrium/internal/store"
)

// Formatters render store results as compact markdown for the chat surface.

func formatIssue(d *store.IssueDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s: %s\n", d.Key, d.Title)
	fmt.Fprintf(&sb, "**Type:** %s | **Status:** %s | **Priority:** %s\n", d.Type, d.Status, d.Priority)
	fmt.Fprintf(&sb, "**Assignee:** %s | **Reporter:** %s\n", d.AssigneeName, d.ReporterName)
	fmt.Fprintf(&sb, "**Sprint:** %s | **Story Points:** %d | **Due:** %s\n", d.Sprint, d.StoryPoints, d.DueDate)

	if d.Description != "" {
		fmt.Fprintf(&sb, "\n**Description:**\n%s\n", truncate(d.Description, 300))
	}
	if len(d.Subtasks) > 0 {
		fmt.Fprintf(&sb, "\n**Subtasks (%d):**\n", len(d.Subtasks))
		for _, s := range d.Subtasks {
			fmt.Fprintf(&sb, "- [%s] `%s`: %s\n", s.Status, s.Key, truncate(s.Title, 60))
		}
	}
	if len(d.Comments) > 0 {
		last := d.Comments[len(d.Comments)-1]
		sb.WriteString("\n**Latest Comment:**\n")
		fmt.Fprintf(&sb, "> %s (%s): %s\n", last.AuthorName, truncate(last.CreatedAt, 10), truncate(last.Body, 150))
	}
	return sb.String()
}

func formatPersonIssues(sum *store.PersonSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Issues for %s (%d total)\n\n", titleCase(sum.Person), sum.Total)

	if len(sum.ByStatus) > 0 {
		sb.WriteString("**By Status:**")
		for status, count := range sum.ByStatus {
			fmt.Fprintf(&sb, " %s: **%d** ", status, count)
		}
		sb.WriteString("\n")
	}
	if len(sum.Open) > 0 {
		fmt.Fprintf(&sb, "\n**Open Issues (%d):**\n", len(sum.Open))
		for i, issue := range sum.Open {
			if i == 8 {
				break
			}
			fmt.Fprintf(&sb, "- `%s`: %s, _%s_ (%s)\n",
				issue.Key, truncate(issue.Title, 60), issue.Status, issue.Priority)
		}
	}
	return sb.String()
}

func formatSprint(b *store.SprintBoard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s Board (%d issues)\n\n", b.Sprint, b.Total)
	for status, count := range b.ByStatus {
		fmt.Fprintf(&sb, "**%s**: %d\n", status, count)
	}
	sb.WriteString("\n**Issues:**\n")
	for i, issue := range b.Issues {
		if i == 10 {
			break
		}
		fmt.Fprintf(&sb, "- `%s` %s, assigned to %s\n",
			issue.Key, truncate(issue.Title, 55), issue.AssigneeName)
	}
	return sb.String()
}

func formatIssueList(issues []store.Issue, title string) string {
	if len(issues) == 0 {
		return "No issues found matching your criteria."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n\n", title)
	for i, issue := range issues {
		if i == 10 {
			break
		}
		fmt.Fprintf(&sb, "- [%s/%s] `%s`: **%s**, assigned to %s\n",
			issue.Status, issue.Priority, issue.Key, truncate(issue.Title, 55), issue.AssigneeName)
	}
	if len(issues) > 10 {
		fmt.Fprintf(&sb, "\n_...and %d more_\n", len(issues)-10)
	}
	return sb.String()
}

func formatCreatedIssue(d *store.IssueDetail) string {
	var sb strings.Builder
	sb.WriteString("**Issue created!**\n\n")
	fmt.Fprintf(&sb, "**%s**: %s\n", d.Key, d.Title)
	fmt.Fprintf(&sb, "- **Type:** %s | **Priority:** %s | **Status:** %s\n", d.Type, d.Priority, d.Status)
	fmt.Fprintf(&sb, "- **Assignee:** %s\n", d.AssigneeName)
	fmt.Fprintf(&sb, "- **Project:** %s\n\n", d.Project)
	sb.WriteString("_The issue is now in the backlog. You can update its status anytime._")
	return sb.String()
}

func formatEmployee(e *store.EmployeeDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n", e.FullName)
	fmt.Fprintf(&sb, "**%s**, %s\n", e.JobTitle, e.Department)
	fmt.Fprintf(&sb, "Email: %s | Phone: %s | Slack: %s\n", e.Email, e.Phone, e.Slack)
	fmt.Fprintf(&sb, "Location: %s | Joined: %s\n", e.Location, e.JoinDate)

	if e.ManagerName != "" {
		fmt.Fprintf(&sb, "**Reports to:** %s\n", e.ManagerName)
	}
	if len(e.DirectReports) > 0 {
		names := make([]string, len(e.DirectReports))
		for i, r := range e.DirectReports {
			names[i] = r.FullName
		}
		fmt.Fprintf(&sb, "**Direct Reports (%d):** %s\n", len(names), strings.Join(names, ", "))
	}
	if len(e.LeaveBalances) > 0 {
		sb.WriteString("\n**Leave Balances:**\n")
		for _, b := range e.LeaveBalances {
			fmt.Fprintf(&sb, "- %s: **%d** days remaining (%d/%d used)\n",
				b.LeaveType, b.Remaining, b.Used, b.Allocated)
		}
	}
	return sb.String()
}

func formatLeaveBalance(name string, balances []store.LeaveBalance) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Leave Balance for %s\n\n", name)
	for _, b := range balances {
		pct := 0
		if b.Allocated > 0 {
			pct = b.Used * 100 / b.Allocated
		}
		fmt.Fprintf(&sb, "**%s:** %d days remaining (%d%% used)\n", b.LeaveType, b.Remaining, pct)
	}
	return sb.String()
}

func formatSupportTickets(tickets []store.SupportTicket) string {
	if len(tickets) == 0 {
		return "No support tickets found."
	}
	var sb strings.Builder
	sb.WriteString("### IT Support Desk Tickets\n\n")
	for i, t := range tickets {
		if i == 8 {
			break
		}
		fmt.Fprintf(&sb, "- [%s/%s] **%s**: %s\n", t.Status, t.Priority, t.TicketID, truncate(t.Title, 60))
		fmt.Fprintf(&sb, "  raised by %s on %s\n", t.RaisedBy, t.CreatedDate)
	}
	return sb.String()
}

func formatAnnouncements(items []store.Announcement) string {
	if len(items) == 0 {
		return "No announcements right now."
	}
	var sb strings.Builder
	sb.WriteString("### Company Announcements\n\n")
	for i, a := range items {
		if i == 5 {
			break
		}
		pin := ""
		if a.Pinned {
			pin = "[pinned] "
		}
		fmt.Fprintf(&sb, "%s**%s**\n", pin, a.Title)
		fmt.Fprintf(&sb, "%s...\n", truncate(a.Body, 180))
		fmt.Fprintf(&sb, "_Posted by %s on %s_\n\n", a.Author, a.PostedDate)
	}
	return sb.String()
}

func formatTableSchema(ts *store.TableSchema) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Schema: `%s`\n", ts.Table)
	if ts.Metadata != nil {
		fmt.Fprintf(&sb, "**%d rows** | %.1f MB | Owner: %s\n", ts.Metadata.RowCount, ts.Metadata.SizeMB, ts.Metadata.OwnerTeam)
	}
	sb.WriteString("\n| Column | Type | Nullable |\n|--------|------|----------|\n")
	for _, c := range ts.Columns {
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", c.Name, c.DataType, c.Nullable)
	}
	return sb.String()
}
