package llm

import "strings"

// ExtractSQL recovers a bare SQL statement from model output. If the text
// begins with a triple-backtick fence, the first fenced segment is taken and a
// leading "sql" language tag is stripped. Unfenced text is returned trimmed.
//
// This is a best-effort heuristic, not a markdown parser: it assumes at most
// one fenced block with the tag in the leading position. Multiply-fenced
// output may come back truncated.
func ExtractSQL(raw string) string {
	sql := strings.TrimSpace(raw)
	if strings.HasPrefix(sql, "```") {
		parts := strings.Split(sql, "```")
		if len(parts) > 1 {
			sql = parts[1]
		}
		if strings.HasPrefix(sql, "sql") {
			sql = sql[3:]
		}
	}
	return strings.TrimSpace(sql)
}
