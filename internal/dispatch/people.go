package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atriumhq/atrium/internal/llm"
	"github.com/atriumhq/atrium/internal/store"
)

const policySystem = "You are an HR policy expert. Answer based ONLY on the provided policy documents. " +
	"Quote exact policies with numbers and days when available. Be precise."

func (d *Dispatcher) policy(ctx context.Context, env *Envelope, query string, history []llm.Message) {
	d.grounded(ctx, env, query, policySystem, query, history)
}

func (d *Dispatcher) leave(ctx context.Context, env *Envelope, query, q string, ext map[string]string, history []llm.Message, user string) error {
	switch {
	case containsAny(q, "apply", "request", "take", "need", "want"):
		prompt := fmt.Sprintf("Employee wants to apply for leave. Query: %s\n"+
			"Explain the process, required fields, and any relevant policy rules. "+
			"Ask for missing info (leave type, dates) if not provided.", query)
		d.grounded(ctx, env, "leave application policy rules", "", prompt, history)

	case containsAny(q, "balance", "remaining", "how many", "available", "left"):
		person := ext["person"]
		if person == "" {
			person = user
		}
		if person != "" {
			employees, err := d.store.SearchEmployees(ctx, person, "", "")
			if err != nil {
				return err
			}
			if len(employees) > 0 {
				balances, err := d.store.LeaveBalances(ctx, employees[0].EmpID)
				if err != nil {
					return err
				}
				env.Data = balances
				env.Answer = formatLeaveBalance(employees[0].FullName, balances)
				return nil
			}
		}
		d.grounded(ctx, env, query, "", query, history)

	default:
		d.grounded(ctx, env, query, "", query, history)
	}
	return nil
}

func (d *Dispatcher) directory(ctx context.Context, env *Envelope, ext map[string]string) error {
	if person := ext["person"]; person != "" {
		emp, err := d.store.GetEmployee(ctx, person)
		if errors.Is(err, store.ErrNotFound) {
			env.Answer = fmt.Sprintf("No employee found matching **%s**.", person)
			return nil
		}
		if err != nil {
			return err
		}
		env.Data = emp
		env.Answer = formatEmployee(emp)
		return nil
	}

	departments, err := d.store.Departments(ctx)
	if err != nil {
		return err
	}
	env.Data = departments

	var sb strings.Builder
	sb.WriteString("### Department Directory\n\n")
	for _, dept := range departments {
		fmt.Fprintf(&sb, "- **%s** has %d employees\n", dept.Name, dept.Headcount)
	}
	env.Answer = sb.String()
	return nil
}

func (d *Dispatcher) announce(ctx context.Context, env *Envelope) error {
	items, err := d.store.Announcements(ctx, false)
	if err != nil {
		return err
	}
	env.Data = items
	env.Answer = formatAnnouncements(items)
	return nil
}

func (d *Dispatcher) expense(ctx context.Context, env *Envelope) error {
	items, err := d.store.Expenses(ctx, "", "")
	if err != nil {
		return err
	}
	env.Data = items

	var sb strings.Builder
	sb.WriteString("### Recent Expense Reports\n\n")
	for i, e := range items {
		if i == 10 {
			break
		}
		fmt.Fprintf(&sb, "- **%s** claimed %.0f %s (%s), status _%s_\n",
			e.FullName, e.Amount, e.Currency, e.Category, e.Status)
	}
	env.Answer = sb.String()
	return nil
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
