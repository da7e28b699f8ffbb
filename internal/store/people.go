package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Employee is a directory entry.
type Employee struct {
	ID         int64  `json:"id"`
	EmpID      string `json:"emp_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
	Location   string `json:"location"`
	Phone      string `json:"phone"`
	Slack      string `json:"slack_handle"`
	JoinDate   string `json:"join_date"`
	Status     string `json:"status"`
	Initials   string `json:"avatar_initials"`
}

// EmployeeDetail is one employee with their manager, direct reports and
// current-year leave balances.
type EmployeeDetail struct {
	Employee
	ManagerName   string         `json:"manager_name,omitempty"`
	DirectReports []Employee     `json:"direct_reports"`
	LeaveBalances []LeaveBalance `json:"leave_balances"`
}

// Department is a directory grouping with its active headcount.
type Department struct {
	Name      string `json:"department"`
	Headcount int    `json:"headcount"`
}

// LeaveBalance is one leave type's allocation for an employee.
type LeaveBalance struct {
	EmpID     string `json:"emp_id"`
	LeaveType string `json:"leave_type"`
	Allocated int    `json:"allocated"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Year      int    `json:"year"`
}

// LeaveRequest is a submitted leave application.
type LeaveRequest struct {
	ID          int64  `json:"id"`
	EmpID       string `json:"emp_id"`
	FullName    string `json:"full_name"`
	LeaveType   string `json:"leave_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	AppliedDate string `json:"applied_date"`
	ApprovedBy  string `json:"approved_by,omitempty"`
}

// LeaveReceipt is the outcome of ApplyLeave. Accepted is false when the
// request was turned down on balance grounds; Message explains either way.
type LeaveReceipt struct {
	Accepted bool   `json:"accepted"`
	Days     int    `json:"days"`
	Message  string `json:"message"`
}

// Announcement is a company-wide notice.
type Announcement struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Category   string `json:"category"`
	Author     string `json:"author"`
	PostedDate string `json:"posted_date"`
	Pinned     bool   `json:"pinned"`
	Audience   string `json:"audience"`
}

// Expense is an expense report line joined with the claimant's name.
type Expense struct {
	ID          int64   `json:"id"`
	EmpID       string  `json:"emp_id"`
	FullName    string  `json:"full_name"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	ApprovedBy  string  `json:"approved_by,omitempty"`
}

const employeeColumns = `id, emp_id, full_name, email, department, job_title,
	location, phone, slack_handle, join_date, status, avatar_initials`

func scanEmployee(row interface{ Scan(...any) error }) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.EmpID, &e.FullName, &e.Email, &e.Department,
		&e.JobTitle, &e.Location, &e.Phone, &e.Slack, &e.JoinDate, &e.Status, &e.Initials)
	return e, err
}

// SearchEmployees finds active employees by name, department or location
// substring. All filters are optional.
func (s *Store) SearchEmployees(ctx context.Context, name, dept, location string) ([]Employee, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString("SELECT " + employeeColumns + " FROM employees WHERE status='active'")
	for _, f := range []struct{ column, value string }{
		{"full_name", name}, {"department", dept}, {"location", location},
	} {
		if f.value != "" {
			sb.WriteString(" AND LOWER(" + f.column + ") LIKE ?")
			params = append(params, "%"+strings.ToLower(f.value)+"%")
		}
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee looks up one employee by employee id, name substring or exact
// email, with manager, direct reports and leave balances attached.
func (s *Store) GetEmployee(ctx context.Context, identifier string) (*EmployeeDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT e.id, e.emp_id, e.full_name, e.email, e.department, e.job_title,
		        e.location, e.phone, e.slack_handle, e.join_date, e.status, e.avatar_initials,
		        COALESCE(m.full_name,'')
		 FROM employees e LEFT JOIN employees m ON e.manager_id=m.id
		 WHERE e.emp_id=? OR LOWER(e.full_name) LIKE ? OR e.email=?`,
		identifier, "%"+strings.ToLower(identifier)+"%", identifier)

	var d EmployeeDetail
	err := row.Scan(&d.ID, &d.EmpID, &d.FullName, &d.Email, &d.Department,
		&d.JobTitle, &d.Location, &d.Phone, &d.Slack, &d.JoinDate, &d.Status,
		&d.Initials, &d.ManagerName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %q: %w", identifier, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	reports, err := s.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE manager_id=?", d.ID)
	if err != nil {
		return nil, fmt.Errorf("direct reports: %w", err)
	}
	defer reports.Close()
	for reports.Next() {
		e, err := scanEmployee(reports)
		if err != nil {
			return nil, fmt.Errorf("scan direct report: %w", err)
		}
		d.DirectReports = append(d.DirectReports, e)
	}
	if err := reports.Err(); err != nil {
		return nil, err
	}

	if d.LeaveBalances, err = s.LeaveBalances(ctx, d.EmpID); err != nil {
		return nil, err
	}
	return &d, nil
}

// Departments lists active departments with their headcounts.
func (s *Store) Departments(ctx context.Context) ([]Department, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT department, COUNT(*) FROM employees WHERE status='active' GROUP BY department")
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.Name, &d.Headcount); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

const balanceYear = 2024

// LeaveBalances returns the employee's leave balances for the current plan
// year.
func (s *Store) LeaveBalances(ctx context.Context, empID string) ([]LeaveBalance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT emp_id, leave_type, allocated, used, remaining, year
		 FROM leave_balances WHERE emp_id=? AND year=?`, empID, balanceYear)
	if err != nil {
		return nil, fmt.Errorf("leave balances: %w", err)
	}
	defer rows.Close()

	var balances []LeaveBalance
	for rows.Next() {
		var b LeaveBalance
		if err := rows.Scan(&b.EmpID, &b.LeaveType, &b.Allocated, &b.Used, &b.Remaining, &b.Year); err != nil {
			return nil, fmt.Errorf("scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// LeaveRequests lists leave applications, optionally filtered by employee
// and status, most recent first.
func (s *Store) LeaveRequests(ctx context.Context, empID, status string) ([]LeaveRequest, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT lr.id, lr.emp_id, e.full_name, lr.leave_type, lr.start_date,
		lr.end_date, lr.days, lr.status, COALESCE(lr.reason,''), lr.applied_date,
		COALESCE(lr.approved_by,'')
		FROM leave_requests lr JOIN employees e ON lr.emp_id=e.emp_id WHERE 1=1`)
	if empID != "" {
		sb.WriteString(" AND lr.emp_id=?")
		params = append(params, empID)
	}
	if status != "" {
		sb.WriteString(" AND LOWER(lr.status)=?")
		params = append(params, strings.ToLower(status))
	}
	sb.WriteString(" ORDER BY lr.applied_date DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("leave requests: %w", err)
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		var r LeaveRequest
		if err := rows.Scan(&r.ID, &r.EmpID, &r.FullName, &r.LeaveType, &r.StartDate,
			&r.EndDate, &r.Days, &r.Status, &r.Reason, &r.AppliedDate, &r.ApprovedBy); err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// ApplyLeave submits a leave application. Dates use YYYY-MM-DD and are
// inclusive. A request exceeding the remaining balance is turned down with
// an explanatory receipt, not an error; errors signal malformed dates or a
// database fault.
func (s *Store) ApplyLeave(ctx context.Context, empID, leaveType, startDate, endDate, reason string) (*LeaveReceipt, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("start date %q: %w", startDate, ErrInvalidDates)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("end date %q: %w", endDate, ErrInvalidDates)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return nil, fmt.Errorf("end before start: %w", ErrInvalidDates)
	}

	var remaining int
	err = s.db.QueryRowContext(ctx,
		"SELECT remaining FROM leave_balances WHERE emp_id=? AND leave_type=? AND year=?",
		empID, leaveType, balanceYear).Scan(&remaining)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No tracked balance for this leave type; accept and let the
		// approver decide.
	case err != nil:
		return nil, fmt.Errorf("check leave balance: %w", err)
	case remaining < days:
		return &LeaveReceipt{
			Accepted: false,
			Days:     days,
			Message: fmt.Sprintf("Insufficient %s balance. Available: %d days, Requested: %d days",
				leaveType, remaining, days),
		}, nil
	}

	today := time.Now().Format("2006-01-02")
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leave_requests (emp_id,leave_type,start_date,end_date,days,status,reason,applied_date)
		 VALUES (?,?,?,?,?,?,?,?)`,
		empID, leaveType, startDate, endDate, days, "PENDING", reason, today)
	if err != nil {
		return nil, fmt.Errorf("insert leave request: %w", err)
	}
	return &LeaveReceipt{
		Accepted: true,
		Days:     days,
		Message: fmt.Sprintf("Leave request submitted! %s: %s to %s (%d days). Awaiting manager approval.",
			leaveType, startDate, endDate, days),
	}, nil
}

// Announcements lists company notices, pinned first then newest first.
func (s *Store) Announcements(ctx context.Context, pinnedOnly bool) ([]Announcement, error) {
	query := "SELECT id, title, body, category, author, posted_date, pinned, audience FROM announcements"
	if pinnedOnly {
		query += " WHERE pinned=1"
	}
	query += " ORDER BY pinned DESC, posted_date DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var items []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.Author,
			&a.PostedDate, &a.Pinned, &a.Audience); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// Expenses lists expense reports, optionally filtered by employee and
// status, newest first.
func (s *Store) Expenses(ctx context.Context, empID, status string) ([]Expense, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString(`SELECT ex.id, ex.emp_id, e.full_name, ex.category, ex.amount,
		ex.currency, ex.description, ex.date, ex.status, COALESCE(ex.approved_by,'')
		FROM expenses ex JOIN employees e ON ex.emp_id=e.emp_id WHERE 1=1`)
	if empID != "" {
		sb.WriteString(" AND ex.emp_id=?")
		params = append(params, empID)
	}
	if status != "" {
		sb.WriteString(" AND LOWER(ex.status)=?")
		params = append(params, strings.ToLower(status))
	}
	sb.WriteString(" ORDER BY ex.date DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.EmpID, &e.FullName, &e.Category, &e.Amount,
			&e.Currency, &e.Description, &e.Date, &e.Status, &e.ApprovedBy); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
