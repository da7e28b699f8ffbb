// Package dispatch runs the assistant pipeline: classify the query, pull
// entities out of it, and hand it to the matching domain handler. Handlers
// answer directly from the store where they can and fall back to grounded
// generation for open-ended questions.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/internal/index"
	"github.com/atriumhq/atrium/internal/llm"
	"github.com/atriumhq/atrium/internal/route"
	"github.com/atriumhq/atrium/internal/store"
)

// Envelope is the uniform response for one processed query.
type Envelope struct {
	Intent     route.Intent     `json:"intent"`
	Module     string           `json:"module"`
	Label      string           `json:"label"`
	Confidence route.Confidence `json:"confidence"`
	Answer     string           `json:"answer"`
	Data       any              `json:"data,omitempty"`
	Sources    []index.Result   `json:"sources,omitempty"`
}

// Dispatcher routes classified queries to domain handlers.
type Dispatcher struct {
	store      *store.Store
	idx        *index.Index
	gen        llm.Generator
	logger     *slog.Logger
	company    string
	maxHistory int
}

// New assembles a dispatcher over the given store, knowledge index and
// generator.
func New(st *store.Store, idx *index.Index, gen llm.Generator, cfg *config.Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:      st,
		idx:        idx,
		gen:        gen,
		logger:     logger.With("component", "dispatch"),
		company:    cfg.CompanyName,
		maxHistory: cfg.MaxHistory,
	}
}

// Process answers one query. The user name, when known, personalizes "my"
// queries and attributes created records. Handler faults never propagate;
// they degrade to an apologetic answer under the intent's label.
func (d *Dispatcher) Process(ctx context.Context, query string, history []llm.Message, user string) *Envelope {
	r := route.Classify(query)
	ext := route.Extract(query)
	q := strings.ToLower(query)

	env := &Envelope{
		Intent:     r.Intent,
		Module:     r.Module,
		Label:      route.Label(r.Intent),
		Confidence: r.Confidence,
	}

	var err error
	switch r.Intent {
	case route.IntentTicketView:
		err = d.ticketView(ctx, env, q, ext, user)
	case route.IntentTicketCreate:
		err = d.ticketCreate(ctx, env, query, ext, user)
	case route.IntentTicketUpdate:
		err = d.ticketUpdate(ctx, env, query, q, ext, user)
	case route.IntentPolicy:
		d.policy(ctx, env, query, history)
	case route.IntentLeave:
		err = d.leave(ctx, env, query, q, ext, history, user)
	case route.IntentDirectory:
		err = d.directory(ctx, env, ext)
	case route.IntentSupportDesk:
		err = d.supportDesk(ctx, env, query, q, user)
	case route.IntentSQLGenerate:
		err = d.sqlGenerate(ctx, env, query, ext)
	case route.IntentColumnFind:
		err = d.columnFind(ctx, env, query, ext)
	case route.IntentSchema:
		err = d.schemaExplore(ctx, env, ext)
	case route.IntentPipeline:
		err = d.pipeline(ctx, env)
	case route.IntentAnnounce:
		err = d.announce(ctx, env)
	case route.IntentExpense:
		err = d.expense(ctx, env)
	default:
		d.general(ctx, env, query, history)
	}

	if err != nil {
		d.logger.Error("handler failed", "intent", r.Intent, "error", err)
		env.Answer = "Something went wrong while handling that request. Please try again."
		env.Data = nil
	}
	if env.Answer == "" {
		env.Answer = "I couldn't process that request. Please try rephrasing."
	}
	return env
}

// grounded runs retrieval for the query and completes with the retrieved
// context. A generation failure degrades to an offline notice instead of an
// error.
func (d *Dispatcher) grounded(ctx context.Context, env *Envelope, query, system, prompt string, history []llm.Message) {
	results, err := d.idx.Retrieve(ctx, query)
	if err != nil {
		d.logger.Warn("retrieval failed", "error", err)
	}
	env.Sources = results

	content := prompt
	if kb := index.FormatContext(results); kb != "" {
		content = kb + "\n\nUser: " + prompt
	}
	env.Answer = d.complete(ctx, system, content, history, prompt)
}

// complete calls the generator and degrades to an offline notice when it is
// unreachable.
func (d *Dispatcher) complete(ctx context.Context, system, prompt string, history []llm.Message, query string) string {
	if system == "" {
		system = llm.SystemPrompt(d.company)
	}
	out, err := d.gen.Complete(ctx, system, prompt, d.trimHistory(history))
	if err != nil {
		d.logger.Warn("generation failed", "error", err)
		return offlineAnswer(query)
	}
	return out
}

func (d *Dispatcher) trimHistory(history []llm.Message) []llm.Message {
	if len(history) > d.maxHistory {
		return history[len(history)-d.maxHistory:]
	}
	return history
}

func offlineAnswer(query string) string {
	short := query
	if len(short) > 80 {
		short = short[:80]
	}
	return fmt.Sprintf("**[Offline]** I received: %q\n\n"+
		"The language model is not reachable right now, so I can't compose a full answer. "+
		"Set GEMINI_API_KEY (or point the provider at a local Ollama) to enable AI answers.", short)
}

func (d *Dispatcher) general(ctx context.Context, env *Envelope, query string, history []llm.Message) {
	d.grounded(ctx, env, query, "", query, history)
}
