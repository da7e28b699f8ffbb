package store

import (
	"context"
	"database/sql"
	"fmt"
)

// seed inserts the demo dataset when the employees table is empty. Returns
// true when rows were inserted.
func (s *Store) seed(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees").Scan(&count); err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	insert := func(stmt string, rows [][]any) error {
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, stmt, row...); err != nil {
				return fmt.Errorf("seed insert: %w", err)
			}
		}
		return nil
	}

	steps := []struct {
		stmt string
		rows [][]any
	}{
		{"INSERT INTO employees VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)", seedEmployees},
		{"INSERT INTO projects VALUES (?,?,?,?,?)", seedProjects},
		{"INSERT INTO issues VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)", seedIssues},
		{"INSERT INTO issue_comments (issue_key,author_id,body,created_at) VALUES (?,?,?,?)", seedComments},
		{"INSERT INTO leave_balances (emp_id,leave_type,allocated,used,remaining,year) VALUES (?,?,?,?,?,?)", seedLeaveBalances},
		{"INSERT INTO leave_requests VALUES (?,?,?,?,?,?,?,?,?,?)", seedLeaveRequests},
		{"INSERT INTO helpdesk_tickets (ticket_id,title,description,category,priority,status,raised_by,assigned_to,created_date,resolved_date,resolution) VALUES (?,?,?,?,?,?,?,?,?,?,?)", seedHelpdesk},
		{"INSERT INTO announcements VALUES (?,?,?,?,?,?,?,?)", seedAnnouncements},
		{"INSERT INTO dw_tables (table_schema,table_name,table_type,row_count,size_mb,owner_team,created_date,last_modified) VALUES (?,?,?,?,?,?,?,?)", seedDWTables},
		{"INSERT INTO dw_columns (table_schema,table_name,column_name,data_type,is_nullable,ordinal_position) VALUES (?,?,?,?,?,?)", seedDWColumns},
		{"INSERT INTO pipeline_runs (pipeline_name,status,start_time,end_time,rows_processed,error_message) VALUES (?,?,?,?,?,?)", seedPipelineRuns},
		{"INSERT INTO data_quality_checks (table_schema,table_name,column_name,check_type,check_status,null_count,distinct_count) VALUES (?,?,?,?,?,?,?)", seedQualityChecks},
		{"INSERT INTO expenses (emp_id,category,amount,currency,description,date,status,approved_by) VALUES (?,?,?,?,?,?,?,?)", seedExpenses},
	}
	for _, st := range steps {
		if err := insert(st.stmt, st.rows); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed transaction: %w", err)
	}
	return true, nil
}

// null stands in for a NULL column value in the seed rows.
var null = sql.NullInt64{}

var seedEmployees = [][]any{
	{1, "EMP001", "Ravi Kumar", "ravi.kumar@acmecorp.com", "Engineering", "VP Engineering", null, "Hyderabad", "9876543210", "@ravi", "2019-03-01", "active", "RK"},
	{2, "EMP002", "Priya Sharma", "priya.sharma@acmecorp.com", "Engineering", "Senior Data Engineer", 1, "Hyderabad", "9876543211", "@priya", "2020-06-15", "active", "PS"},
	{3, "EMP003", "Arjun Singh", "arjun.singh@acmecorp.com", "Engineering", "Full Stack Developer", 1, "Bangalore", "9876543212", "@arjun", "2021-01-10", "active", "AS"},
	{4, "EMP004", "Kavya Menon", "kavya.menon@acmecorp.com", "Business Intelligence", "BI Lead", 1, "Hyderabad", "9876543213", "@kavya", "2020-09-01", "active", "KM"},
	{5, "EMP005", "Sunita Rao", "sunita.rao@acmecorp.com", "Finance", "Finance Manager", null, "Mumbai", "9876543214", "@sunita", "2018-11-15", "active", "SR"},
	{6, "EMP006", "Vikram Patel", "vikram.patel@acmecorp.com", "Engineering", "DevOps Engineer", 1, "Pune", "9876543215", "@vikram", "2021-07-01", "active", "VP"},
	{7, "EMP007", "Mohan Reddy", "mohan.reddy@acmecorp.com", "HR", "HR Manager", null, "Hyderabad", "9876543216", "@mohan", "2019-01-20", "active", "MR"},
	{8, "EMP008", "Deepa Nair", "deepa.nair@acmecorp.com", "Engineering", "Python Developer", 1, "Bangalore", "9876543217", "@deepa", "2022-03-01", "active", "DN"},
	{9, "EMP009", "Rahul Gupta", "rahul.gupta@acmecorp.com", "Sales", "Sales Lead", null, "Delhi", "9876543218", "@rahul", "2020-04-01", "active", "RG"},
	{10, "EMP010", "Anita Joshi", "anita.joshi@acmecorp.com", "Engineering", "QA Engineer", 1, "Hyderabad", "9876543219", "@anita", "2022-08-15", "active", "AJ"},
	{11, "EMP011", "Kiran Babu", "kiran.babu@acmecorp.com", "Engineering", "Data Analyst", 4, "Hyderabad", "9876543220", "@kiran", "2023-01-05", "active", "KB"},
	{12, "EMP012", "Neha Kapoor", "neha.kapoor@acmecorp.com", "HR", "HR Executive", 7, "Mumbai", "9876543221", "@neha", "2023-03-20", "active", "NK"},
}

var seedProjects = [][]any{
	{1, "ACME", "ACME Platform", "Ravi Kumar", "active"},
	{2, "DATA", "Data Engineering", "Priya Sharma", "active"},
	{3, "BI", "Business Intelligence", "Kavya Menon", "active"},
	{4, "INFRA", "Infrastructure", "Vikram Patel", "active"},
	{5, "HR", "HR Systems", "Mohan Reddy", "active"},
}

var seedIssues = [][]any{
	{1, "ACME-101", "ACME", "Epic", "Customer Portal v2.0", "Full rebuild of customer portal with new design system", "IN PROGRESS", "HIGH", 3, 1, null, "Sprint 42", null, "2024-01-15", "2024-06-01", "2024-07-31", "portal,frontend", ""},
	{2, "ACME-102", "ACME", "Story", "Implement OAuth2 SSO login", "As an employee I want to login with company SSO", "IN PROGRESS", "HIGH", 3, 1, "ACME-101", "Sprint 42", 5, "2024-05-01", "2024-06-01", "2024-06-30", "auth,security", "ACME-101"},
	{3, "ACME-103", "ACME", "Task", "Set up Azure AD app registration", "Register OAuth app in Azure AD tenant", "DONE", "HIGH", 3, 3, "ACME-102", "Sprint 42", 3, "2024-05-01", "2024-05-20", "2024-05-25", "azure,auth", "ACME-101"},
	{4, "ACME-104", "ACME", "Task", "Implement PKCE flow in frontend", "Add PKCE auth code flow to React login", "IN PROGRESS", "HIGH", 3, 1, "ACME-102", "Sprint 42", 5, "2024-05-05", "2024-06-01", "2024-06-15", "react,auth", "ACME-101"},
	{5, "ACME-105", "ACME", "Subtask", "Write unit tests for auth module", "Cover edge cases: expired tokens, refresh flow", "TODO", "MEDIUM", 10, 3, "ACME-104", "Sprint 43", 2, "2024-05-10", "2024-05-10", "2024-06-20", "testing", "ACME-101"},
	{6, "ACME-106", "ACME", "Bug", "Login page crashes on Safari 17", "TypeError in token parser, affects 23% of users", "OPEN", "CRITICAL", 3, 10, "ACME-102", "Sprint 42", null, "2024-06-01", "2024-06-01", "2024-06-05", "bug,safari", "ACME-101"},
	{7, "ACME-107", "ACME", "Story", "User profile management page", "Allow users to update personal info, avatar, preferences", "TODO", "MEDIUM", 8, 2, null, "Sprint 43", 8, "2024-05-20", "2024-05-20", "2024-07-15", "profile,ui", "ACME-101"},
	{8, "DATA-201", "DATA", "Epic", "Real-time Data Pipeline", "Build Kafka-based real-time ingestion for sales events", "IN PROGRESS", "HIGH", 2, 1, null, "Sprint 42", null, "2024-03-01", "2024-06-01", "2024-09-30", "kafka,pipeline", ""},
	{9, "DATA-202", "DATA", "Story", "Design Kafka topic schema", "Define Avro schemas for order and customer events", "DONE", "HIGH", 2, 2, "DATA-201", "Sprint 40", 5, "2024-03-15", "2024-04-30", "2024-04-30", "kafka,schema", "DATA-201"},
	{10, "DATA-203", "DATA", "Story", "Implement Kafka consumer in Python", "Consume events and write to staging Delta Lake", "IN PROGRESS", "HIGH", 2, 2, "DATA-201", "Sprint 42", 13, "2024-04-01", "2024-06-01", "2024-06-30", "kafka,python", "DATA-201"},
	{11, "DATA-204", "DATA", "Task", "Set up Kafka cluster on Azure", "Deploy 3-node Kafka cluster with monitoring", "DONE", "HIGH", 6, 2, "DATA-203", "Sprint 41", 8, "2024-04-01", "2024-05-15", "2024-05-15", "kafka,azure,infra", "DATA-201"},
	{12, "DATA-205", "DATA", "Bug", "Duplicate events in consumer", "Exactly-once semantics not working for payment events", "OPEN", "CRITICAL", 2, 11, "DATA-203", "Sprint 42", null, "2024-06-01", "2024-06-01", "2024-06-08", "bug,kafka", "DATA-201"},
	{13, "DATA-206", "DATA", "Story", "dbt transformation models for sales", "Build dbt models: staging, intermediate, mart", "IN PROGRESS", "MEDIUM", 11, 2, null, "Sprint 43", 8, "2024-05-01", "2024-06-01", "2024-07-01", "dbt,sql", "DATA-201"},
	{14, "BI-301", "BI", "Story", "Executive KPI Dashboard", "C-suite dashboard: revenue, headcount, CSAT, burn rate", "IN PROGRESS", "HIGH", 4, 1, null, "Sprint 42", 13, "2024-04-15", "2024-06-01", "2024-06-30", "powerbi,executive", ""},
	{15, "BI-302", "BI", "Task", "Connect Power BI to Synapse", "Set up DirectQuery connection for real-time dashboard", "DONE", "HIGH", 4, 4, "BI-301", "Sprint 41", 5, "2024-04-20", "2024-05-20", "2024-05-20", "powerbi,synapse", ""},
	{16, "BI-303", "BI", "Bug", "Sales chart shows wrong YTD", "YTD calculation off by 1 day due to timezone issue", "OPEN", "HIGH", 4, 11, "BI-301", "Sprint 42", null, "2024-06-01", "2024-06-01", "2024-06-07", "bug,powerbi,timezone", ""},
	{17, "INFRA-401", "INFRA", "Story", "Kubernetes migration for microservices", "Move 8 services from EC2 to AKS", "IN PROGRESS", "HIGH", 6, 1, null, "Sprint 42", 21, "2024-02-01", "2024-06-01", "2024-08-31", "kubernetes,azure,migration", ""},
	{18, "INFRA-402", "INFRA", "Task", "Dockerize legacy auth service", "Write Dockerfile + compose for auth-service", "DONE", "MEDIUM", 6, 6, "INFRA-401", "Sprint 39", 5, "2024-03-01", "2024-04-01", "2024-04-01", "docker", ""},
	{19, "INFRA-403", "INFRA", "Task", "Set up AKS cluster", "Provision AKS with 3 node pools, RBAC, networking", "DONE", "HIGH", 6, 6, "INFRA-401", "Sprint 40", 8, "2024-03-15", "2024-05-01", "2024-05-01", "aks,azure", ""},
	{20, "INFRA-404", "INFRA", "Bug", "Pod OOMKilled in production", "Auth service pods being OOMKilled under load", "OPEN", "CRITICAL", 6, 6, "INFRA-401", "Sprint 42", null, "2024-06-02", "2024-06-02", "2024-06-04", "bug,kubernetes,memory", ""},
	{21, "HR-501", "HR", "Story", "Self-service leave portal", "Employees can apply/track leave without email", "IN PROGRESS", "MEDIUM", 7, 7, null, "Sprint 43", 8, "2024-05-01", "2024-06-01", "2024-07-31", "hr,leave", ""},
	{22, "HR-502", "HR", "Story", "Onboarding checklist automation", "Auto-generate onboarding tasks for new joiners", "TODO", "LOW", 12, 7, null, "Sprint 44", 5, "2024-05-15", "2024-05-15", "2024-08-31", "hr,onboarding", ""},
}

var seedComments = [][]any{
	{"ACME-106", 3, "Reproduced on Safari 17.1. Token parser chokes on the new response shape.", "2024-06-01 14:20"},
	{"ACME-106", 10, "Adding regression test once the fix lands.", "2024-06-02 09:05"},
	{"DATA-205", 2, "Consumer group rebalance drops the transactional offsets. Investigating.", "2024-06-02 11:40"},
}

var seedLeaveBalances = [][]any{
	{"EMP001", "Annual Leave", 24, 8, 16, 2024},
	{"EMP001", "Sick Leave", 10, 2, 8, 2024},
	{"EMP001", "Casual Leave", 6, 1, 5, 2024},
	{"EMP002", "Annual Leave", 24, 5, 19, 2024},
	{"EMP002", "Sick Leave", 10, 0, 10, 2024},
	{"EMP002", "Casual Leave", 6, 2, 4, 2024},
	{"EMP003", "Annual Leave", 24, 12, 12, 2024},
	{"EMP003", "Sick Leave", 10, 3, 7, 2024},
	{"EMP004", "Annual Leave", 24, 6, 18, 2024},
	{"EMP004", "Maternity Leave", 180, 0, 180, 2024},
	{"EMP005", "Annual Leave", 24, 10, 14, 2024},
	{"EMP005", "Sick Leave", 10, 1, 9, 2024},
}

var seedLeaveRequests = [][]any{
	{1, "EMP002", "Annual Leave", "2024-07-01", "2024-07-05", 5, "APPROVED", "Family vacation", "2024-06-01", "Ravi Kumar"},
	{2, "EMP003", "Annual Leave", "2024-06-10", "2024-06-14", 5, "PENDING", "Wedding anniversary trip", "2024-06-01", ""},
	{3, "EMP004", "Sick Leave", "2024-05-20", "2024-05-21", 2, "APPROVED", "Fever", "2024-05-19", "Ravi Kumar"},
	{4, "EMP008", "Casual Leave", "2024-06-15", "2024-06-15", 1, "PENDING", "Personal work", "2024-06-01", ""},
}

var seedHelpdesk = [][]any{
	{"TKT-001", "Laptop running slow with 8GB RAM", "Dell XPS laptop taking 5 mins to boot, high CPU always", "Hardware", "HIGH", "RESOLVED", "EMP003", "IT Team", "2024-05-01", "2024-05-03", "Increased RAM to 16GB"},
	{"TKT-002", "VPN disconnects every 30 mins", "GlobalProtect VPN drops connection frequently on home network", "Network", "MEDIUM", "IN PROGRESS", "EMP002", "EMP006", "2024-06-01", "", ""},
	{"TKT-003", "Cannot access ticket tracker, 403 error", "Getting 403 forbidden when accessing DATA project", "Access", "HIGH", "OPEN", "EMP011", "IT Team", "2024-06-02", "", ""},
	{"TKT-004", "Need Adobe Acrobat Pro license", "Require PDF editing for contract management", "Software", "LOW", "OPEN", "EMP005", "IT Team", "2024-06-01", "", ""},
	{"TKT-005", "Office 365 license not activated", "New laptop doesn't have O365 activated", "Software", "HIGH", "RESOLVED", "EMP010", "IT Team", "2024-05-28", "2024-05-29", "License assigned from pool"},
	{"TKT-006", "Wi-Fi dropping in conference room B", "Meeting disruptions due to poor Wi-Fi signal", "Network", "MEDIUM", "IN PROGRESS", "EMP009", "EMP006", "2024-05-30", "", ""},
}

var seedAnnouncements = [][]any{
	{1, "Q2 All-Hands Meeting on June 20th", "Join us for our quarterly all-hands! Leadership will present Q2 results, the product roadmap, and host a live Q&A. The meeting link will be shared 24h before.", "Company", "HR Team", "2024-06-01", 1, "All"},
	{2, "New Health Insurance Plan from July 1st", "We have upgraded our group health insurance to include dental, vision, and mental health coverage. Sum insured increased to Rs 10 Lakhs per family. Details in the attachment.", "HR", "Mohan Reddy", "2024-06-01", 1, "All"},
	{3, "Atrium v2.0 Launch", "Our internal AI assistant Atrium is now live! Ask HR policy questions, track tickets, query data, all in one place. Try it now!", "Tech", "Engineering Team", "2024-06-03", 0, "All"},
	{4, "Public Holiday: June 17 (Eid)", "June 17th is a company holiday. Please plan your sprints and deadlines accordingly. Emergency contacts are listed in the HR portal.", "HR", "Mohan Reddy", "2024-06-02", 0, "All"},
	{5, "Referral Bonus Doubled to Rs 50,000", "We're hiring! Successfully refer a candidate who joins and completes 6 months and earn Rs 50,000 (was Rs 25,000). Open roles listed in the careers portal.", "HR", "Mohan Reddy", "2024-05-28", 0, "All"},
	{6, "Mandatory Security Training Due June 30", "Complete the annual cybersecurity awareness training on the LMS by June 30th. Non-completion will result in access restrictions.", "IT", "IT Security", "2024-05-25", 0, "All"},
}

var seedDWTables = [][]any{
	{"sales", "fact_orders", "BASE TABLE", 8420000, 1240.5, "Sales Analytics", "2022-01-15", "2024-06-01"},
	{"sales", "dim_customer", "BASE TABLE", 350000, 45.2, "CRM Team", "2022-01-15", "2024-05-28"},
	{"sales", "dim_product", "BASE TABLE", 12000, 3.1, "Product Team", "2022-01-15", "2024-04-10"},
	{"finance", "fact_transactions", "BASE TABLE", 22000000, 4800.0, "Finance Analytics", "2021-06-01", "2024-06-01"},
	{"hr", "dim_employee", "BASE TABLE", 18000, 4.2, "HR Analytics", "2022-09-01", "2024-05-31"},
	{"staging", "stg_raw_orders", "BASE TABLE", 1200000, 180.0, "Data Engineering", "2023-01-01", "2024-06-01"},
	{"dbo", "vw_sales_summary", "VIEW", 0, 0.0, "BI Team", "2023-03-01", "2024-04-01"},
}

var seedDWColumns = [][]any{
	{"sales", "fact_orders", "order_id", "BIGINT", "NO", 1},
	{"sales", "fact_orders", "customer_id", "BIGINT", "NO", 2},
	{"sales", "fact_orders", "order_date", "DATE", "NO", 3},
	{"sales", "fact_orders", "total_amount", "DECIMAL", "NO", 4},
	{"sales", "fact_orders", "order_status", "NVARCHAR", "YES", 5},
	{"sales", "dim_customer", "customer_id", "BIGINT", "NO", 1},
	{"sales", "dim_customer", "customer_name", "NVARCHAR", "NO", 2},
	{"sales", "dim_customer", "email", "NVARCHAR", "YES", 3},
	{"sales", "dim_customer", "customer_segment", "NVARCHAR", "YES", 4},
	{"finance", "fact_transactions", "transaction_id", "BIGINT", "NO", 1},
	{"finance", "fact_transactions", "amount", "DECIMAL", "NO", 2},
	{"finance", "fact_transactions", "currency_code", "NCHAR", "NO", 3},
	{"finance", "fact_transactions", "customer_id", "BIGINT", "YES", 4},
}

var seedPipelineRuns = [][]any{
	{"PL_Orders_ETL", "SUCCESS", "2024-06-01 02:00", "2024-06-01 02:47", 1200000, ""},
	{"PL_Finance_ETL", "FAILED", "2024-06-01 03:00", "2024-06-01 03:12", 0, "Connection timeout to source"},
	{"PL_Customer_ETL", "SUCCESS", "2024-06-01 01:30", "2024-06-01 01:58", 95000, ""},
	{"PL_HR_ETL", "SUCCESS", "2024-06-01 00:30", "2024-06-01 00:55", 18000, ""},
}

var seedQualityChecks = [][]any{
	{"sales", "fact_orders", "order_id", "NOT_NULL", "PASS", 0, 8420000},
	{"sales", "fact_orders", "total_amount", "RANGE", "PASS", 0, 512044},
	{"sales", "dim_customer", "email", "NOT_NULL", "WARN", 1240, 348760},
	{"sales", "dim_customer", "customer_id", "UNIQUE", "PASS", 0, 350000},
	{"finance", "fact_transactions", "currency_code", "ALLOWED_VALUES", "PASS", 0, 14},
	{"finance", "fact_transactions", "customer_id", "FOREIGN_KEY", "FAIL", 0, 21087},
}

var seedExpenses = [][]any{
	{"EMP003", "Travel", 12500.0, "INR", "Flight HYD-BLR for client meeting", "2024-05-15", "APPROVED", "Ravi Kumar"},
	{"EMP002", "Conference", 45000.0, "INR", "PyConf India 2024 registration + hotel", "2024-05-20", "PENDING", ""},
	{"EMP004", "Software", 8999.0, "INR", "Power BI Pro license annual", "2024-05-10", "APPROVED", "Ravi Kumar"},
	{"EMP005", "Entertainment", 3200.0, "INR", "Client dinner at Taj Hotel", "2024-05-25", "APPROVED", "Ravi Kumar"},
	{"EMP006", "Hardware", 6500.0, "INR", "USB-C hub and HDMI cable for home office", "2024-05-28", "REJECTED", "Sunita Rao"},
}
