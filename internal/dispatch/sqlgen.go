package dispatch

import (
	"fmt"
	"regexp"
	"strings"
)

// templateSQL turns a natural-language request into T-SQL from a library of
// query shapes. It is the deterministic fallback when the generator is
// unreachable, so SQL generation keeps working offline.
func templateSQL(request, schemaHint string) string {
	q := strings.ToLower(request)

	table := "sales.fact_orders"
	if m := tableHintRe.FindStringSubmatch(schemaHint); m != nil {
		table = m[1]
	}

	if containsAny(q, "top", "highest", "largest", "best") {
		n := firstNumber(q, "10")
		switch {
		case strings.Contains(q, "customer") && containsAny(q, "revenue", "sales", "amount", "spend"):
			return fmt.Sprintf(`-- Top %s customers by total revenue
SELECT TOP %s
    customer_id,
    customer_name,
    SUM(order_amount)   AS total_revenue,
    COUNT(order_id)     AS total_orders,
    AVG(order_amount)   AS avg_order_value
FROM %s
WHERE order_status != 'CANCELLED'
GROUP BY customer_id, customer_name
ORDER BY total_revenue DESC;`, n, n, table)
		case strings.Contains(q, "product"):
			return fmt.Sprintf(`-- Top %s products by revenue
SELECT TOP %s
    product_id,
    product_name,
    product_category,
    SUM(quantity_sold)  AS units_sold,
    SUM(order_amount)   AS total_revenue
FROM %s
GROUP BY product_id, product_name, product_category
ORDER BY total_revenue DESC;`, n, n, table)
		case containsAny(q, "region", "country"):
			return fmt.Sprintf(`-- Top %s regions by revenue
SELECT TOP %s
    region,
    country,
    SUM(order_amount)   AS total_revenue,
    COUNT(order_id)     AS total_orders
FROM %s
GROUP BY region, country
ORDER BY total_revenue DESC;`, n, n, table)
		}
	}

	if containsAny(q, "daily", "trend", "over time") {
		n := firstNumber(q, "30")
		return fmt.Sprintf(`-- Daily sales trend (last %s days)
SELECT
    CAST(order_date AS DATE)    AS order_day,
    COUNT(order_id)             AS total_orders,
    SUM(order_amount)           AS daily_revenue,
    AVG(order_amount)           AS avg_order_value,
    SUM(SUM(order_amount)) OVER (
        ORDER BY CAST(order_date AS DATE)
    )                           AS cumulative_revenue
FROM %s
WHERE order_date >= DATEADD(DAY, -%s, GETDATE())
GROUP BY CAST(order_date AS DATE)
ORDER BY order_day;`, n, table, n)
	}

	if strings.Contains(q, "month") && containsAny(q, "trend", "revenue", "sales") {
		return fmt.Sprintf(`-- Monthly revenue trend
SELECT
    YEAR(order_date)                AS year,
    MONTH(order_date)               AS month_num,
    DATENAME(MONTH, order_date)     AS month_name,
    COUNT(order_id)                 AS total_orders,
    SUM(order_amount)               AS monthly_revenue,
    AVG(order_amount)               AS avg_order_value
FROM %s
WHERE order_date >= DATEADD(MONTH, -12, GETDATE())
GROUP BY YEAR(order_date), MONTH(order_date), DATENAME(MONTH, order_date)
ORDER BY year, month_num;`, table)
	}

	if strings.Contains(q, "duplicate") {
		col := pickColumn(q, "email", "customer_id", "order_id")
		return fmt.Sprintf(`-- Find duplicate %s values
SELECT
    %s,
    COUNT(*)        AS occurrences
FROM %s
GROUP BY %s
HAVING COUNT(*) > 1
ORDER BY occurrences DESC;`, col, col, table, col)
	}

	if containsAny(q, "null", "missing", "empty", "blank") {
		col := pickColumn(q, "email", "phone", "customer_id")
		return fmt.Sprintf(`-- Records with missing %s
SELECT
    COUNT(*)                            AS total_records,
    SUM(CASE WHEN %s IS NULL THEN 1 ELSE 0 END)  AS null_count,
    ROUND(
        100.0 * SUM(CASE WHEN %s IS NULL THEN 1 ELSE 0 END) / COUNT(*), 2
    )                                   AS null_percentage
FROM %s;

-- View the actual records
SELECT *
FROM %s
WHERE %s IS NULL
   OR LTRIM(RTRIM(CAST(%s AS VARCHAR(MAX)))) = ''
ORDER BY created_date DESC;`, col, col, col, table, table, col, col)
	}

	for i, month := range monthNames {
		if !strings.Contains(q, month) {
			continue
		}
		year := "2024"
		if m := yearRe.FindStringSubmatch(q); m != nil {
			year = m[1]
		}
		extra := ""
		if strings.Contains(q, "delivered") {
			extra = "\n  AND order_status = 'DELIVERED'"
		} else if strings.Contains(q, "pending") {
			extra = "\n  AND order_status = 'PENDING'"
		}
		return fmt.Sprintf(`-- Orders in %s %s
SELECT
    order_id,
    customer_id,
    customer_name,
    order_date,
    order_amount,
    order_status,
    product_category
FROM %s
WHERE YEAR(order_date)  = %s
  AND MONTH(order_date) = %02d%s
ORDER BY order_date DESC;`, titleCase(month), year, table, year, i+1, extra)
	}

	if containsAny(q, "revenue", "sales total", "total amount", "summary") {
		return fmt.Sprintf(`-- Revenue summary dashboard
SELECT
    COUNT(order_id)             AS total_orders,
    SUM(order_amount)           AS total_revenue,
    AVG(order_amount)           AS avg_order_value,
    MIN(order_amount)           AS min_order,
    MAX(order_amount)           AS max_order,
    COUNT(DISTINCT customer_id) AS unique_customers
FROM %s
WHERE order_date >= DATEADD(DAY, -30, GETDATE());

-- Breakdown by status
SELECT
    order_status,
    COUNT(*)            AS count,
    SUM(order_amount)   AS revenue
FROM %s
GROUP BY order_status
ORDER BY revenue DESC;`, table, table)
	}

	if containsAny(q, "count", "how many", "total records", "number of") {
		return fmt.Sprintf(`-- Record count summary
SELECT
    COUNT(*)                            AS total_rows,
    COUNT(DISTINCT customer_id)         AS unique_customers,
    COUNT(DISTINCT product_id)          AS unique_products,
    MIN(order_date)                     AS first_order_date,
    MAX(order_date)                     AS last_order_date
FROM %s;`, table)
	}

	return fmt.Sprintf(`-- Query results from %s
SELECT TOP 100
    order_id,
    customer_id,
    customer_name,
    order_date,
    order_amount,
    order_status,
    product_category
FROM %s
ORDER BY order_date DESC;`, table, table)
}

var (
	tableHintRe = regexp.MustCompile(`Table:\s*(\S+)`)
	numberRe    = regexp.MustCompile(`\b(\d+)\b`)
	yearRe      = regexp.MustCompile(`\b(202[0-9])\b`)
)

var monthNames = []string{"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december"}

func firstNumber(q, fallback string) string {
	if m := numberRe.FindStringSubmatch(q); m != nil {
		return m[1]
	}
	return fallback
}

// pickColumn returns the first candidate column mentioned in the request,
// or the last candidate as the default.
func pickColumn(q string, candidates ...string) string {
	for _, c := range candidates[:len(candidates)-1] {
		if strings.Contains(q, strings.Split(c, "_")[0]) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
