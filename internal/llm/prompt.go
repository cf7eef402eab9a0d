package llm

import "fmt"

// SchemaContext describes the tables the model may query. It is prompt text
// only; it is never parsed or checked against the live database.
const SchemaContext = `Database Schema:
- vendors (id, vendor_id, name, category, created_at, updated_at)
- customers (id, customer_id, name, email, created_at, updated_at)
- invoices (id, invoice_id, vendor_id, customer_id, invoice_date, due_date, total_amount, status, created_at, updated_at)
- line_items (id, item_id, invoice_id, description, quantity, unit_price, total, created_at, updated_at)
- payments (id, payment_id, invoice_id, payment_date, amount, method, created_at, updated_at)

Relationships:
- invoices.vendor_id -> vendors.vendor_id
- invoices.customer_id -> customers.customer_id
- line_items.invoice_id -> invoices.id
- payments.invoice_id -> invoices.id`

const systemPrompt = "You are a SQL expert. Generate only valid PostgreSQL queries based on the schema and user query."

// BuildPrompt embeds the schema context, the generation rules, and the verbatim
// question into a single user prompt. Pure function; any input is accepted,
// including the empty string.
func BuildPrompt(question string) string {
	return fmt.Sprintf(`You are a SQL expert. Given the following database schema and a natural language query, generate a valid PostgreSQL SQL query.

%s

Natural Language Query: %s

Generate ONLY the SQL query without any explanation. The query should:
1. Be valid PostgreSQL syntax
2. Use proper table and column names from the schema
3. Be safe (no DROP, DELETE, UPDATE, INSERT, ALTER statements)
4. Return meaningful results

SQL Query:`, SchemaContext, question)
}
