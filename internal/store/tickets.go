package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidIssueStatuses is the workflow vocabulary accepted by
// UpdateIssueStatus.
var ValidIssueStatuses = []string{"OPEN", "TODO", "IN PROGRESS", "IN REVIEW", "DONE", "CLOSED", "RESOLVED", "BLOCKED"}

// Issue is a single tracker issue with assignee and reporter resolved to
// display names.
type Issue struct {
	ID           int64  `json:"id"`
	Key          string `json:"issue_key"`
	Project      string `json:"project_key"`
	Type         string `json:"issue_type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	AssigneeName string `json:"assignee_name"`
	ReporterName string `json:"reporter_name"`
	ParentKey    string `json:"parent_key,omitempty"`
	Sprint       string `json:"sprint"`
	StoryPoints  int    `json:"story_points"`
	CreatedDate  string `json:"created_date"`
	UpdatedDate  string `json:"updated_date"`
	DueDate      string `json:"due_date"`
	Labels       string `json:"labels,omitempty"`
}

// Comment is a discussion entry on an issue.
type Comment struct {
	ID         int64  `json:"id"`
	IssueKey   string `json:"issue_key"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}

// IssueDetail is an issue with its subtasks and comment thread.
type IssueDetail struct {
	Issue
	Subtasks []Issue   `json:"subtasks"`
	Comments []Comment `json:"comments"`
}

// IssueFilter narrows ListIssues. Zero-value fields are ignored. Name and
// text filters match case-insensitive substrings; Status, Type and Priority
// match exactly (case-insensitive).
type IssueFilter struct {
	Assignee  string
	Status    string
	Type      string
	Project   string
	Sprint    string
	Priority  string
	ParentKey string
	IssueKey  string
	Keyword   string
}

// PersonSummary groups one person's assigned issues for a workload view.
type PersonSummary struct {
	Person   string         `json:"person"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
	Issues   []Issue        `json:"issues"`
	Open     []Issue        `json:"open"`
	Critical []Issue        `json:"critical"`
}

// SprintBoard groups a sprint's issues by status.
type SprintBoard struct {
	Sprint   string         `json:"sprint"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Issues   []Issue        `json:"issues"`
}

// Project is a tracker project.
type Project struct {
	ID     int64  `json:"id"`
	Key    string `json:"key"`
	Name   string `json:"name"`
	Lead   string `json:"lead"`
	Status string `json:"status"`
}

// TrackerSummary is a headline count of the issue backlog.
type TrackerSummary struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Bugs     int `json:"bugs"`
	Critical int `json:"critical"`
}

// CreateIssueParams describes a new issue. Zero-value fields fall back to
// the tracker defaults: Story type, ACME project, MEDIUM priority, the
// current planning sprint.
type CreateIssueParams struct {
	Title        string
	Type         string
	Project      string
	Description  string
	Priority     string
	AssigneeName string
	ReporterName string
	ParentKey    string
	StoryPoints  int
	Sprint       string
	Labels       string
	DueDate      string
}

const issueColumns = `i.id, i.issue_key, i.project_key, i.issue_type, i.title,
	COALESCE(i.description,''), i.status, i.priority,
	COALESCE((SELECT full_name FROM employees WHERE id=i.assignee_id),'Unassigned'),
	COALESCE((SELECT full_name FROM employees WHERE id=i.reporter_id),''),
	COALESCE(i.parent_key,''), COALESCE(i.sprint,''), COALESCE(i.story_points,0),
	i.created_date, i.updated_date, COALESCE(i.due_date,''), COALESCE(i.labels,'')`

func scanIssue(row interface{ Scan(...any) error }) (Issue, error) {
	var i Issue
	err := row.Scan(&i.ID, &i.Key, &i.Project, &i.Type, &i.Title, &i.Description,
		&i.Status, &i.Priority, &i.AssigneeName, &i.ReporterName, &i.ParentKey,
		&i.Sprint, &i.StoryPoints, &i.CreatedDate, &i.UpdatedDate, &i.DueDate, &i.Labels)
	return i, err
}

// ListIssues returns the 50 most recently updated issues matching the
// filter.
func (s *Store) ListIssues(ctx context.Context, f IssueFilter) ([]Issue, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString("SELECT " + issueColumns + " FROM issues i WHERE 1=1")
	add := func(clause string, args ...any) {
		sb.WriteString(" AND " + clause)
		params = append(params, args...)
	}
	if f.Assignee != "" {
		add("LOWER((SELECT full_name FROM employees WHERE id=i.assignee_id)) LIKE ?",
			"%"+strings.ToLower(f.Assignee)+"%")
	}
	if f.Status != "" {
		add("LOWER(i.status)=?", strings.ToLower(f.Status))
	}
	if f.Type != "" {
		add("LOWER(i.issue_type)=?", strings.ToLower(f.Type))
	}
	if f.Project != "" {
		add("LOWER(i.project_key) LIKE ?", "%"+strings.ToLower(f.Project)+"%")
	}
	if f.Sprint != "" {
		add("LOWER(i.sprint) LIKE ?", "%"+strings.ToLower(f.Sprint)+"%")
	}
	if f.Priority != "" {
		add("LOWER(i.priority)=?", strings.ToLower(f.Priority))
	}
	if f.ParentKey != "" {
		add("i.parent_key=?", f.ParentKey)
	}
	if f.IssueKey != "" {
		add("i.issue_key=?", f.IssueKey)
	}
	if f.Keyword != "" {
		k := "%" + strings.ToLower(f.Keyword) + "%"
		add("(LOWER(i.title) LIKE ? OR LOWER(i.description) LIKE ?)", k, k)
	}
	sb.WriteString(" ORDER BY i.updated_date DESC LIMIT 50")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// GetIssueDetail fetches one issue with its subtasks and comments. Returns
// ErrNotFound when the key does not exist.
func (s *Store) GetIssueDetail(ctx context.Context, issueKey string) (*IssueDetail, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+issueColumns+" FROM issues i WHERE i.issue_key=?", issueKey)
	issue, err := scanIssue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("issue %s: %w", issueKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", issueKey, err)
	}

	detail := &IssueDetail{Issue: issue}
	if detail.Subtasks, err = s.ListIssues(ctx, IssueFilter{ParentKey: issueKey}); err != nil {
		return nil, err
	}
	if detail.Comments, err = s.listComments(ctx, issueKey); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Store) listComments(ctx context.Context, issueKey string) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.issue_key,
		        COALESCE((SELECT full_name FROM employees WHERE id=c.author_id),'Atrium'),
		        c.body, c.created_at
		 FROM issue_comments c WHERE c.issue_key=? ORDER BY c.created_at`, issueKey)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.IssueKey, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// PersonIssues summarizes every issue assigned to the named person.
func (s *Store) PersonIssues(ctx context.Context, person string) (*PersonSummary, error) {
	issues, err := s.ListIssues(ctx, IssueFilter{Assignee: person})
	if err != nil {
		return nil, err
	}
	sum := &PersonSummary{
		Person:   person,
		Total:    len(issues),
		ByStatus: groupCount(issues, func(i Issue) string { return i.Status }),
		ByType:   groupCount(issues, func(i Issue) string { return i.Type }),
		Issues:   issues,
	}
	for _, i := range issues {
		if i.Status != "DONE" && i.Status != "CLOSED" && i.Status != "RESOLVED" {
			sum.Open = append(sum.Open, i)
		}
		if (i.Priority == "CRITICAL" || i.Priority == "HIGH") && i.Status != "DONE" && i.Status != "CLOSED" {
			sum.Critical = append(sum.Critical, i)
		}
	}
	return sum, nil
}

// SprintIssues returns the named sprint's board grouped by status.
func (s *Store) SprintIssues(ctx context.Context, sprint string) (*SprintBoard, error) {
	issues, err := s.ListIssues(ctx, IssueFilter{Sprint: sprint})
	if err != nil {
		return nil, err
	}
	return &SprintBoard{
		Sprint:   sprint,
		Total:    len(issues),
		ByStatus: groupCount(issues, func(i Issue) string { return i.Status }),
		Issues:   issues,
	}, nil
}

func groupCount(issues []Issue, key func(Issue) string) map[string]int {
	g := make(map[string]int)
	for _, i := range issues {
		g[key(i)]++
	}
	return g
}

// CreateIssue inserts a new issue in OPEN status and returns its detail.
// The issue key is the project key plus the next sequence number for that
// project.
func (s *Store) CreateIssue(ctx context.Context, p CreateIssueParams) (*IssueDetail, error) {
	if p.Type == "" {
		p.Type = "Story"
	}
	if p.Project == "" {
		p.Project = "ACME"
	}
	if p.Priority == "" {
		p.Priority = "MEDIUM"
	}
	if p.Sprint == "" {
		p.Sprint = "Sprint 43"
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM issues WHERE project_key=?", p.Project).Scan(&count); err != nil {
		return nil, fmt.Errorf("count project issues: %w", err)
	}
	issueKey := fmt.Sprintf("%s-%d", p.Project, 100+count+1)

	now := time.Now().Format("2006-01-02 15:04")
	today := time.Now().Format("2006-01-02")
	dueDate := p.DueDate
	if dueDate == "" {
		dueDate = today
	}

	var points any
	if p.StoryPoints > 0 {
		points = p.StoryPoints
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO issues
		 (issue_key, project_key, issue_type, title, description, status, priority,
		  assignee_id, reporter_id, parent_key, sprint, story_points,
		  created_date, updated_date, due_date, labels, epic_key)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		issueKey, p.Project, p.Type, p.Title, p.Description, "OPEN", p.Priority,
		s.findEmployeeID(ctx, p.AssigneeName), s.findEmployeeID(ctx, p.ReporterName),
		nullable(p.ParentKey), p.Sprint, points, now, now, dueDate, p.Labels, p.ParentKey)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return s.GetIssueDetail(ctx, issueKey)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// UpdateIssueStatus moves an issue to a new workflow status. The status is
// upper-cased before validation.
func (s *Store) UpdateIssueStatus(ctx context.Context, issueKey, status string) error {
	status = strings.ToUpper(status)
	valid := false
	for _, v := range ValidIssueStatuses {
		if status == v {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("status %q: %w", status, ErrInvalidStatus)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE issues SET status=?, updated_date=? WHERE issue_key=?",
		status, time.Now().Format("2006-01-02 15:04"), issueKey)
	if err != nil {
		return fmt.Errorf("update issue status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("issue %s: %w", issueKey, ErrNotFound)
	}
	return nil
}

// AddComment appends a comment to an issue. An empty author records the
// assistant as the author.
func (s *Store) AddComment(ctx context.Context, issueKey, body, author string) (*Comment, error) {
	if _, err := s.GetIssueDetail(ctx, issueKey); err != nil {
		return nil, err
	}
	now := time.Now().Format("2006-01-02 15:04")
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO issue_comments (issue_key, author_id, body, created_at) VALUES (?,?,?,?)",
		issueKey, s.findEmployeeID(ctx, author), body, now)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	id, _ := res.LastInsertId()
	if author == "" {
		author = "Atrium"
	}
	return &Comment{ID: id, IssueKey: issueKey, AuthorName: author, Body: body, CreatedAt: now}, nil
}

// Projects lists all tracker projects.
func (s *Store) Projects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, key, name, lead, status FROM projects")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Key, &p.Name, &p.Lead, &p.Status); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// TrackerStats returns backlog headline counts.
func (s *Store) TrackerStats(ctx context.Context) (*TrackerSummary, error) {
	var sum TrackerSummary
	counts := []struct {
		dst   *int
		query string
	}{
		{&sum.Total, "SELECT COUNT(*) FROM issues"},
		{&sum.Open, "SELECT COUNT(*) FROM issues WHERE status NOT IN ('DONE','CLOSED','RESOLVED')"},
		{&sum.Bugs, "SELECT COUNT(*) FROM issues WHERE issue_type='Bug' AND status NOT IN ('DONE','CLOSED')"},
		{&sum.Critical, "SELECT COUNT(*) FROM issues WHERE priority='CRITICAL' AND status NOT IN ('DONE','CLOSED','RESOLVED')"},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("tracker stats: %w", err)
		}
	}
	return &sum, nil
}
