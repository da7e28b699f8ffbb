// Package route classifies free-text employee queries into intents and
// extracts structured entities from them. Classification is pure regex
// against a fixed pattern table: deterministic, no model calls, no I/O.
package route

import "strings"

// Intent identifies what the user is asking for.
type Intent string

const (
	IntentTicketCreate Intent = "TICKET_CREATE"
	IntentTicketUpdate Intent = "TICKET_UPDATE"
	IntentTicketView   Intent = "TICKET_VIEW"
	IntentLeave        Intent = "LEAVE"
	IntentPolicy       Intent = "POLICY"
	IntentDirectory    Intent = "DIRECTORY"
	IntentSupportDesk  Intent = "SUPPORT_DESK"
	IntentSQLGenerate  Intent = "SQL_GENERATE"
	IntentColumnFind   Intent = "COLUMN_FIND"
	IntentSchema       Intent = "SCHEMA"
	IntentPipeline     Intent = "PIPELINE"
	IntentAnnounce     Intent = "ANNOUNCE"
	IntentExpense      Intent = "EXPENSE"
	IntentGeneral      Intent = "GENERAL"
)

// Module names the handler family an intent belongs to.
const (
	ModuleTickets = "tickets"
	ModulePeople  = "people"
	ModuleSupport = "support"
	ModuleData    = "data"
	ModuleGeneral = "general"
)

// Confidence grades how certain the classifier is about the winning intent.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Route is the classification result for one query.
type Route struct {
	Intent     Intent
	Module     string
	Confidence Confidence
	Entities   map[string]string
	Query      string
}

// Classify matches the lower-cased query against every pattern group and
// returns the group with the most matching rules. Ties go to the group
// declared first in the table. A group with two or more matching rules
// wins with high confidence, a single match is medium, and a query that
// matches nothing falls through to GENERAL with low confidence. Entities
// are extracted from the raw query either way.
func Classify(query string) Route {
	q := strings.ToLower(strings.TrimSpace(query))

	best := -1
	bestHits := 0
	for i, g := range groups {
		hits := 0
		for _, r := range g.rules {
			if r.MatchString(q) {
				hits++
			}
		}
		if hits > bestHits {
			best = i
			bestHits = hits
		}
	}

	if best < 0 {
		return Route{
			Intent:     IntentGeneral,
			Module:     ModuleGeneral,
			Confidence: ConfidenceLow,
			Entities:   Extract(query),
			Query:      query,
		}
	}

	conf := ConfidenceMedium
	if bestHits >= 2 {
		conf = ConfidenceHigh
	}
	return Route{
		Intent:     groups[best].intent,
		Module:     groups[best].module,
		Confidence: conf,
		Entities:   Extract(query),
		Query:      query,
	}
}

// Label returns the human-readable handler label for an intent.
func Label(intent Intent) string {
	if l, ok := labels[intent]; ok {
		return l
	}
	return labels[IntentGeneral]
}

var labels = map[Intent]string{
	IntentTicketView:   "Ticket Tracker",
	IntentTicketCreate: "Create Ticket",
	IntentTicketUpdate: "Update Ticket",
	IntentPolicy:       "HR Policy",
	IntentLeave:        "Leave Management",
	IntentDirectory:    "Employee Directory",
	IntentSupportDesk:  "IT Support Desk",
	IntentSQLGenerate:  "SQL Generator",
	IntentColumnFind:   "Column Finder",
	IntentSchema:       "Schema Explorer",
	IntentPipeline:     "Pipeline Monitor",
	IntentAnnounce:     "Announcements",
	IntentExpense:      "Expenses",
	IntentGeneral:      "Assistant",
}
