package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResultRow is an ordered mapping from column name to a JSON-safe value.
// encoding/json sorts plain map keys alphabetically, which would reorder rows
// on the wire; the row carries the database-reported column order and marshals
// its keys in that order.
type ResultRow struct {
	Columns []string
	Values  map[string]any
}

func NewResultRow(columns []string, values map[string]any) ResultRow {
	return ResultRow{Columns: columns, Values: values}
}

func (r ResultRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *ResultRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("result row: expected object, got %v", tok)
	}

	r.Columns = nil
	r.Values = make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("result row: expected string key, got %v", keyTok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return err
		}
		r.Columns = append(r.Columns, key)
		r.Values[key] = val
	}

	_, err = dec.Token() // closing brace
	return err
}
