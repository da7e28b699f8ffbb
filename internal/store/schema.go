package store

const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY, emp_id TEXT UNIQUE, full_name TEXT, email TEXT,
    department TEXT, job_title TEXT, manager_id INTEGER, location TEXT,
    phone TEXT, slack_handle TEXT, join_date TEXT, status TEXT DEFAULT 'active',
    avatar_initials TEXT
);

CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY, key TEXT UNIQUE, name TEXT, lead TEXT, status TEXT
);

CREATE TABLE IF NOT EXISTS issues (
    id INTEGER PRIMARY KEY, issue_key TEXT UNIQUE, project_key TEXT,
    issue_type TEXT, title TEXT, description TEXT, status TEXT,
    priority TEXT, assignee_id INTEGER, reporter_id INTEGER,
    parent_key TEXT, sprint TEXT, story_points INTEGER,
    created_date TEXT, updated_date TEXT, due_date TEXT,
    labels TEXT, epic_key TEXT
);

CREATE TABLE IF NOT EXISTS issue_comments (
    id INTEGER PRIMARY KEY, issue_key TEXT, author_id INTEGER,
    body TEXT, created_at TEXT
);

CREATE TABLE IF NOT EXISTS leave_requests (
    id INTEGER PRIMARY KEY, emp_id TEXT, leave_type TEXT,
    start_date TEXT, end_date TEXT, days INTEGER,
    status TEXT, reason TEXT, applied_date TEXT, approved_by TEXT
);

CREATE TABLE IF NOT EXISTS leave_balances (
    id INTEGER PRIMARY KEY, emp_id TEXT, leave_type TEXT,
    allocated INTEGER, used INTEGER, remaining INTEGER, year INTEGER
);

CREATE TABLE IF NOT EXISTS helpdesk_tickets (
    id INTEGER PRIMARY KEY, ticket_id TEXT UNIQUE, title TEXT,
    description TEXT, category TEXT, priority TEXT, status TEXT,
    raised_by TEXT, assigned_to TEXT, created_date TEXT,
    resolved_date TEXT, resolution TEXT
);

CREATE TABLE IF NOT EXISTS announcements (
    id INTEGER PRIMARY KEY, title TEXT, body TEXT, category TEXT,
    author TEXT, posted_date TEXT, pinned INTEGER DEFAULT 0, audience TEXT
);

CREATE TABLE IF NOT EXISTS dw_tables (
    id INTEGER PRIMARY KEY, table_schema TEXT, table_name TEXT,
    table_type TEXT, row_count INTEGER, size_mb REAL,
    owner_team TEXT, created_date TEXT, last_modified TEXT
);

CREATE TABLE IF NOT EXISTS dw_columns (
    id INTEGER PRIMARY KEY, table_schema TEXT, table_name TEXT,
    column_name TEXT, data_type TEXT, is_nullable TEXT, ordinal_position INTEGER
);

CREATE TABLE IF NOT EXISTS pipeline_runs (
    id INTEGER PRIMARY KEY, pipeline_name TEXT, status TEXT,
    start_time TEXT, end_time TEXT, rows_processed INTEGER, error_message TEXT
);

CREATE TABLE IF NOT EXISTS data_quality_checks (
    id INTEGER PRIMARY KEY, table_schema TEXT, table_name TEXT,
    column_name TEXT, check_type TEXT, check_status TEXT,
    null_count INTEGER, distinct_count INTEGER
);

CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY, emp_id TEXT, category TEXT, amount REAL,
    currency TEXT, description TEXT, date TEXT, status TEXT, approved_by TEXT
);
`
