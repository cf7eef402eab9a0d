package security

import (
	"fmt"
	"regexp"
	"strings"
)

// maskKind picks the masking strategy from the column name.
type maskKind int

const (
	maskNone maskKind = iota
	maskEmailKind
	maskPhoneKind
	maskCardKind
	maskFull
)

var (
	emailColRe = regexp.MustCompile(`(?i)email`)
	phoneColRe = regexp.MustCompile(`(?i)phone`)
	cardColRe  = regexp.MustCompile(`(?i)credit_card|card_number`)
	fullColRe  = regexp.MustCompile(`(?i)password|secret|token|api_key|ssn`)
)

// DataMasker masks sensitive column values in query results before they are
// returned to the client. Column matching is by name only; values are already
// JSON-safe scalars when masking runs.
type DataMasker struct {
	sensitiveColumns []string
}

func NewDataMasker(sensitiveColumns []string) *DataMasker {
	lower := make([]string, len(sensitiveColumns))
	for i, c := range sensitiveColumns {
		lower[i] = strings.ToLower(c)
	}
	return &DataMasker{sensitiveColumns: lower}
}

// MaskRows returns a copy of rows with sensitive columns masked.
func (m *DataMasker) MaskRows(rows []map[string]any) []map[string]any {
	masked := make([]map[string]any, len(rows))
	for i, row := range rows {
		out := make(map[string]any, len(row))
		for col, val := range row {
			if kind := m.kindFor(col); kind != maskNone && val != nil {
				out[col] = maskValue(kind, fmt.Sprintf("%v", val))
			} else {
				out[col] = val
			}
		}
		masked[i] = out
	}
	return masked
}

func (m *DataMasker) kindFor(col string) maskKind {
	lower := strings.ToLower(col)
	configured := false
	for _, s := range m.sensitiveColumns {
		if strings.Contains(lower, s) {
			configured = true
			break
		}
	}
	switch {
	case emailColRe.MatchString(lower):
		return maskEmailKind
	case phoneColRe.MatchString(lower):
		return maskPhoneKind
	case cardColRe.MatchString(lower):
		return maskCardKind
	case fullColRe.MatchString(lower) || configured:
		return maskFull
	}
	return maskNone
}

func maskValue(kind maskKind, val string) string {
	switch kind {
	case maskEmailKind:
		return maskEmail(val)
	case maskPhoneKind:
		return maskLastFour(val, "***-***-%s")
	case maskCardKind:
		return maskLastFour(val, "****-****-****-%s")
	default:
		return "***"
	}
}

// maskEmail: "john.doe@example.com" becomes "jo***@***.com"
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return "***"
	}
	local, domain := email[:at], email[at+1:]
	visible := 2
	if len(local) < visible {
		visible = len(local)
	}
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 {
		return local[:visible] + "***@***"
	}
	return fmt.Sprintf("%s***@***%s", local[:visible], domain[dot:])
}

// maskLastFour keeps the trailing four digits, e.g. "***-***-1234".
func maskLastFour(val, format string) string {
	var digits []byte
	for i := 0; i < len(val); i++ {
		if val[i] >= '0' && val[i] <= '9' {
			digits = append(digits, val[i])
		}
	}
	if len(digits) < 4 {
		return fmt.Sprintf(format, "****")
	}
	return fmt.Sprintf(format, string(digits[len(digits)-4:]))
}
