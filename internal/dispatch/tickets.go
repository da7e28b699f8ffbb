package dispatch

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/atriumhq/atrium/internal/route"
	"github.com/atriumhq/atrium/internal/store"
)

func (d *Dispatcher) ticketView(ctx context.Context, env *Envelope, q string, ext map[string]string, user string) error {
	switch {
	case ext["issue_key"] != "":
		detail, err := d.store.GetIssueDetail(ctx, ext["issue_key"])
		if errors.Is(err, store.ErrNotFound) {
			env.Answer = fmt.Sprintf("Issue **%s** not found.", ext["issue_key"])
			return nil
		}
		if err != nil {
			return err
		}
		env.Data = detail
		env.Answer = formatIssue(detail)

	case strings.Contains(q, "my") || user != "":
		person := user
		for _, name := range route.KnownPeople {
			if strings.Contains(q, name) {
				person = name
				break
			}
		}
		return d.personBoard(ctx, env, person)

	case ext["person"] != "":
		return d.personBoard(ctx, env, ext["person"])

	case ext["sprint"] != "":
		board, err := d.store.SprintIssues(ctx, ext["sprint"])
		if err != nil {
			return err
		}
		env.Data = board
		env.Answer = formatSprint(board)

	default:
		filter := store.IssueFilter{
			Status:   ext["status"],
			Type:     ext["issue_type"],
			Project:  ext["project"],
			Priority: ext["priority"],
			Keyword:  ext["keyword"],
		}
		issues, err := d.store.ListIssues(ctx, filter)
		if err != nil {
			return err
		}
		env.Data = map[string]any{"issues": issues, "count": len(issues)}
		env.Answer = formatIssueList(issues,
			fmt.Sprintf("Issues matching your query (%d found)", len(issues)))
	}
	return nil
}

func (d *Dispatcher) personBoard(ctx context.Context, env *Envelope, person string) error {
	sum, err := d.store.PersonIssues(ctx, person)
	if err != nil {
		return err
	}
	env.Data = sum
	env.Answer = formatPersonIssues(sum)
	return nil
}

// issueFields is the JSON shape the generator is asked to extract for a
// create request.
type issueFields struct {
	Title        string `json:"title"`
	IssueType    string `json:"issue_type"`
	ProjectKey   string `json:"project_key"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	AssigneeName string `json:"assignee_name"`
	StoryPoints  int    `json:"story_points"`
}

func (d *Dispatcher) ticketCreate(ctx context.Context, env *Envelope, query string, ext map[string]string, user string) error {
	prompt := fmt.Sprintf(`Extract issue details from this request. Return ONLY a JSON object with these keys:
title, issue_type (Story/Task/Bug/Subtask/Epic), project_key (ACME/DATA/BI/INFRA/HR),
description, priority (LOW/MEDIUM/HIGH/CRITICAL), assignee_name, story_points (number or null).
Request: %q
JSON:`, query)

	var fields issueFields
	raw, err := d.gen.Complete(ctx, "Extract JSON only. No explanation.", prompt, nil)
	if err != nil || decodeJSONBlock(raw, &fields) != nil {
		// Generator down or talking instead of emitting JSON; fall back to
		// what the entity extractor saw.
		fields = issueFields{
			Title:      query,
			IssueType:  titleCase(ext["issue_type"]),
			ProjectKey: ext["project"],
			Priority:   ext["priority"],
		}
	}
	if fields.Title == "" {
		fields.Title = truncate(query, 100)
	}

	created, err := d.store.CreateIssue(ctx, store.CreateIssueParams{
		Title:        fields.Title,
		Type:         fields.IssueType,
		Project:      fields.ProjectKey,
		Description:  fields.Description,
		Priority:     fields.Priority,
		AssigneeName: fields.AssigneeName,
		ReporterName: user,
		StoryPoints:  fields.StoryPoints,
	})
	if err != nil {
		return err
	}
	env.Data = created
	env.Answer = formatCreatedIssue(created)
	return nil
}

var commentPrefixRe = regexp.MustCompile(`(?i)add comment (to|on) [A-Z]+-\d+`)

func (d *Dispatcher) ticketUpdate(ctx context.Context, env *Envelope, query, q string, ext map[string]string, user string) error {
	key, status := ext["issue_key"], ext["status"]
	switch {
	case key != "" && status != "":
		err := d.store.UpdateIssueStatus(ctx, key, status)
		switch {
		case errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrNotFound):
			env.Answer = fmt.Sprintf("Could not update %s. Valid statuses: %s.",
				key, strings.Join(store.ValidIssueStatuses, ", "))
		case err != nil:
			return err
		default:
			env.Answer = fmt.Sprintf("**%s** status updated to **%s**.", key, status)
		}

	case strings.Contains(q, "comment") && key != "":
		body := strings.TrimSpace(commentPrefixRe.ReplaceAllString(query, ""))
		if body == "" {
			body = query
		}
		comment, err := d.store.AddComment(ctx, key, body, user)
		if errors.Is(err, store.ErrNotFound) {
			env.Answer = fmt.Sprintf("Issue **%s** not found.", key)
			return nil
		}
		if err != nil {
			return err
		}
		env.Data = comment
		env.Answer = fmt.Sprintf("Comment added to **%s**.", key)

	default:
		env.Answer = "Please specify the issue key and new status.\n\n" +
			"Example: _Update ACME-102 to IN REVIEW_\nOr: _Mark DATA-203 as DONE_"
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
