// Package gviz parses the Google Visualization ("GViz") JSON-in-a-
// function-call payload a public spreadsheet serves, and maps its rows
// onto canonical character records.
package gviz

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"loremaker-codex-be/internal/apperror"
)

// Col is one column descriptor; Label is preferred over ID.
type Col struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Cell is one table cell: V is the structured value, F the formatted
// string. A missing cell arrives as JSON null.
type Cell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

// Row wraps the cell sequence.
type Row struct {
	C []*Cell `json:"c"`
}

// Table is the payload table shape.
type Table struct {
	Cols []Col `json:"cols"`
	Rows []Row `json:"rows"`
}

type gvizResponse struct {
	Table Table `json:"table"`
}

var envelopeRe = regexp.MustCompile(`(?s)google\.visualization\.Query\.setResponse\((.*)\);?\s*$`)

// ParseEnvelope strips the setResponse(...) wrapper and decodes the
// JSON body. A body that does not match the envelope, or whose capture
// is not valid JSON, fails with a BadEnvelopeError.
func ParseEnvelope(body []byte) (*Table, error) {
	m := envelopeRe.FindSubmatch(body)
	if m == nil {
		return nil, &apperror.BadEnvelopeError{Reason: "setResponse wrapper not found"}
	}
	payload := strings.TrimSpace(string(m[1]))
	var resp gvizResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, &apperror.BadEnvelopeError{Reason: "payload is not valid JSON"}
	}
	return &resp.Table, nil
}

// String renders a cell for mapping: the structured value first, the
// formatted value second, empty otherwise. Numbers render without a
// trailing ".0".
func (c *Cell) String() string {
	if c == nil {
		return ""
	}
	switch v := c.V.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return strings.TrimSpace(c.F)
	default:
		if c.F != "" {
			return strings.TrimSpace(c.F)
		}
		return ""
	}
}
