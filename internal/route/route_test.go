package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantIntent Intent
		wantModule string
		wantConf   Confidence
	}{
		{
			name:       "ticket list with several matching rules",
			query:      "Show my open tickets",
			wantIntent: IntentTicketView,
			wantModule: ModuleTickets,
			wantConf:   ConfidenceHigh,
		},
		{
			name:       "bare issue key",
			query:      "ACME-106",
			wantIntent: IntentTicketView,
			wantModule: ModuleTickets,
			wantConf:   ConfidenceMedium,
		},
		{
			name:       "policy question",
			query:      "What is the annual leave policy?",
			wantIntent: IntentPolicy,
			wantModule: ModulePeople,
			wantConf:   ConfidenceHigh,
		},
		{
			name:       "leave application",
			query:      "I want to apply for sick leave tomorrow",
			wantIntent: IntentLeave,
			wantModule: ModulePeople,
			wantConf:   ConfidenceMedium,
		},
		{
			name:       "broken vpn goes to support desk",
			query:      "my vpn is not working",
			wantIntent: IntentSupportDesk,
			wantModule: ModuleSupport,
			wantConf:   ConfidenceMedium,
		},
		{
			name:       "sql request",
			query:      "write sql for top customers by revenue",
			wantIntent: IntentSQLGenerate,
			wantModule: ModuleData,
			wantConf:   ConfidenceHigh,
		},
		{
			name:       "directory lookup",
			query:      "who is the contact for payroll",
			wantIntent: IntentDirectory,
			wantModule: ModulePeople,
			wantConf:   ConfidenceHigh,
		},
		{
			name:       "create a bug",
			query:      "raise a bug for the login page crash",
			wantIntent: IntentTicketCreate,
			wantModule: ModuleTickets,
			wantConf:   ConfidenceHigh,
		},
		{
			name:       "no match falls through to general",
			query:      "tell me a joke",
			wantIntent: IntentGeneral,
			wantModule: ModuleGeneral,
			wantConf:   ConfidenceLow,
		},
		{
			name:       "empty query",
			query:      "   ",
			wantIntent: IntentGeneral,
			wantModule: ModuleGeneral,
			wantConf:   ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query)
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantModule, got.Module)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, tt.query, got.Query)
			assert.NotNil(t, got.Entities)
		})
	}
}

// Equal match counts must resolve to the group declared first in the
// table. "add comment to ACME-12" matches exactly one update rule and one
// view rule (the issue-key rule); update is declared earlier.
func TestClassifyTieBreak(t *testing.T) {
	got := Classify("add comment to ACME-12")
	assert.Equal(t, IntentTicketUpdate, got.Intent)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.Equal(t, "ACME-12", got.Entities["issue_key"])
}

func TestClassifyDeterministic(t *testing.T) {
	const query = "show open bugs in sprint 3"
	first := Classify(query)
	for range 20 {
		assert.Equal(t, first, Classify(query))
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Ticket Tracker", Label(IntentTicketView))
	assert.Equal(t, "Assistant", Label(IntentGeneral))
	assert.Equal(t, "Assistant", Label(Intent("NO_SUCH")))
}
