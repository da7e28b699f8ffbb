package route

import (
	"fmt"
	"regexp"
	"strings"
)

// Rosters and vocabularies the extractor scans for. First match wins, in
// declaration order.
var (
	// KnownPeople is the demo-data employee roster, lower-case.
	KnownPeople = []string{
		"priya", "arjun", "kavya", "ravi", "vikram", "mohan",
		"deepa", "rahul", "anita", "kiran", "sunita", "neha",
	}

	// KnownProjects is the ticketing project roster, lower-case.
	KnownProjects = []string{"acme", "data", "bi", "infra", "hr"}

	// Statuses is the ticket workflow vocabulary.
	Statuses = []string{
		"open", "todo", "in progress", "done", "closed",
		"resolved", "blocked", "in review",
	}

	priorities = []string{"critical", "high", "medium", "low"}
	issueTypes = []string{"story", "task", "subtask", "bug", "epic", "issue"}
)

var (
	issueKeyRe = regexp.MustCompile(`\b([A-Z]{2,6}-\d+)\b`)
	sprintRe   = regexp.MustCompile(`sprint\s*(\d+)`)
	tableRe    = regexp.MustCompile("tables?\\s+[`\"]?(\\w+)[`\"]?")
	columnRe   = regexp.MustCompile("columns?\\s+[`\"]?(\\w+)[`\"]?")
)

// stopWords are filler words never useful as a search keyword.
var stopWords = map[string]struct{}{
	"which": {}, "where": {}, "what": {}, "there": {}, "their": {},
	"about": {}, "would": {}, "could": {}, "should": {}, "those": {},
	"these": {}, "have": {}, "show": {}, "list": {}, "find": {},
	"create": {}, "update": {}, "please": {}, "thanks": {},
}

// Extract pulls structured entities out of a raw query. All matching runs
// against the lower-cased text except the issue key, which is case
// sensitive and taken from the raw text as typed. Keys with no match are
// simply absent; Extract never fails.
func Extract(query string) map[string]string {
	q := strings.ToLower(query)
	ex := make(map[string]string)

	if m := issueKeyRe.FindStringSubmatch(query); m != nil {
		ex["issue_key"] = m[1]
	}
	for _, p := range KnownPeople {
		if strings.Contains(q, p) {
			ex["person"] = p
			break
		}
	}
	for _, p := range KnownProjects {
		if strings.Contains(q, p) {
			ex["project"] = strings.ToUpper(p)
			break
		}
	}
	for _, s := range Statuses {
		if strings.Contains(q, s) {
			ex["status"] = strings.ToUpper(s)
			break
		}
	}
	for _, p := range priorities {
		if strings.Contains(q, p) {
			ex["priority"] = strings.ToUpper(p)
			break
		}
	}
	for _, t := range issueTypes {
		if strings.Contains(q, t) {
			ex["issue_type"] = strings.ToUpper(t)
			break
		}
	}
	if m := sprintRe.FindStringSubmatch(q); m != nil {
		ex["sprint"] = fmt.Sprintf("Sprint %s", m[1])
	}
	if m := tableRe.FindStringSubmatch(q); m != nil {
		ex["table"] = m[1]
	}
	if m := columnRe.FindStringSubmatch(q); m != nil {
		ex["column"] = m[1]
	}

	// First plausible search keyword: longer than four characters and not
	// a filler word, punctuation trimmed.
	for _, w := range strings.Fields(q) {
		if len(w) <= 4 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		ex["keyword"] = strings.Trim(w, `.,?!"'`)
		break
	}

	return ex
}
