package route

import "regexp"

// group pairs an intent with the rules that vote for it. All rules run
// against lower-cased text, so literal vocabulary (including issue keys)
// is written lower-case.
type group struct {
	intent Intent
	module string
	rules  []*regexp.Regexp
}

// groups is the classification table. Order matters: when two groups
// collect the same number of rule matches, the one declared first wins.
var groups = []group{
	{IntentTicketCreate, ModuleTickets, compile(
		`\b(create|add|new|raise|open|log)\b.*(ticket|issue|story|task|subtask|bug|epic)`,
		`\b(create|make|write)\b.*\bjira\b`,
		`\bneed.*(ticket|story|task|jira)`,
		`\b(raise|log)\b.*(bug|issue|story)`,
	)},
	{IntentTicketUpdate, ModuleTickets, compile(
		`\b(update|change|move|set|mark|close|resolve|assign)\b.*(ticket|issue|story|task|status)`,
		`\b(mark|move)\b.*\b(done|complete|closed|resolved|progress|review)\b`,
		`\bassign\b.*\b(ticket|issue|task)\b`,
		`\badd comment\b`,
	)},
	{IntentTicketView, ModuleTickets, compile(
		`\b(show|list|get|find|what)\b.*(ticket|issue|story|task|subtask|bug|epic)`,
		`\b(my|assigned|sprint|backlog)\b.*(ticket|issue|task|story|jira)`,
		`\bjira\b.*(status|update|progress)`,
		`\b(open|closed|done|in progress)\b.*(ticket|issue|story|bug)`,
		`\b[a-z]{2,6}-\d+\b`,
		`\bsprint\b.*(board|status|ticket|story)`,
		`\bwhat.*(assigned|working on)\b`,
		`\b(ticket|issue|story|task|bug)\b.*(priya|arjun|kavya|ravi|vikram|mohan|deepa|rahul|anita|kiran)`,
	)},
	{IntentLeave, ModulePeople, compile(
		`\b(apply|request|take|need|want)\b.*(leave|day off|vacation|pto|sick)`,
		`\b(leave|balance|remaining|available|how many)\b.*(day|count|check|leave|pto|vacation)`,
		`\bhow many.*(leave|day|vacation|pto)\b`,
		`\bmy leave\b`,
		`\b(approve|reject)\b.*leave`,
		`\boff\b.*(tomorrow|monday|friday|next week|this week)`,
		`\bleave balance\b`,
	)},
	{IntentPolicy, ModulePeople, compile(
		`\b(policy|policies|rule|guideline|handbook)\b`,
		`\b(leave|pto|vacation|sick|maternity|paternity|wfh|work from home)\b.*(policy|rule|allow|entitle|day|week)`,
		`\bhow many\b.*(leave|day|vacation|sick)\b`,
		`\b(can i|am i allowed|is it allowed|eligible)\b`,
		`\b(notice period|probation|nda|code of conduct|ethics|harassment)\b`,
		`\b(reimburs|expense|claim|allowance)\b.*(policy|rule|limit|max)`,
		`\b(salary|ctc|benefits|pf|provident|gratuity|esop|insurance)\b.*(policy|structure|detail|how)`,
		`\b(onboard|joining|new hire|induction)\b`,
		`\bperformance review\b`,
	)},
	{IntentDirectory, ModulePeople, compile(
		`\bwho is\b`,
		`\bcontact for\b`,
		`\b(who is|find|search|look up|contact)\b.*(employee|person|staff|team member)`,
		`\b(email|phone|slack|contact)\b.*(priya|arjun|kavya|ravi|vikram|mohan|deepa|rahul|anita|kiran)`,
		`\bwho.*(reports to|works in|team|department)\b`,
		`\borg chart\b`,
		`\bheadcount\b`,
		`\bdirectory\b`,
	)},
	{IntentSupportDesk, ModuleSupport, compile(
		`\bit ticket\b`,
		`\braise.*ticket\b`,
		`\b(raise|create|log|open)\b.*(it|helpdesk|support|ticket)\b`,
		`\b(laptop|computer|vpn|access|password|software|hardware|wifi|wi-fi|internet)\b.*(issue|problem|not working|broken|slow|error)`,
		`\bit helpdesk\b`,
		`\bcan.*(install|access|get)\b.*\b(software|tool|license|vpn)\b`,
		`\b(my ticket|support request|it request)\b`,
	)},
	{IntentSQLGenerate, ModuleData, compile(
		`\bwrite.*sql\b`,
		`\bgenerate.*query\b`,
		`\bsql.*for\b`,
		`\bselect.*from\b`,
	)},
	{IntentColumnFind, ModuleData, compile(
		`\bwhich table.*(column|field)\b`,
		`\bfind.*column\b`,
		`\bwhere is.*column\b`,
	)},
	{IntentSchema, ModuleData, compile(
		`\bschema\b`,
		`\bcolumns of\b`,
		`\bdescribe.*table\b`,
		`\blist.*table\b`,
	)},
	{IntentPipeline, ModuleData, compile(
		`\bpipeline\b`,
		`\betl\b`,
		`\bdata.*fail\b`,
		`\bpipeline.*status\b`,
	)},
	{IntentAnnounce, ModulePeople, compile(
		`\bannouncement\b`,
		`\bnews\b`,
		`\bnotice\b`,
		`\bupdate\b.*company`,
		`\bwhat.*(new|happening)\b`,
	)},
	{IntentExpense, ModulePeople, compile(
		`\b(my expense|claim|reimburs|submit.*expense)\b`,
		`\bexpense.*status\b`,
	)},
}

func compile(patterns ...string) []*regexp.Regexp {
	rules := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		rules[i] = regexp.MustCompile(p)
	}
	return rules
}
