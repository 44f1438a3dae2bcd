// Package plan handles the persistence-facing plan formats: the lenient
// import decoder for hand-edited plan files and the URL-safe share token
// codec.
package plan

import (
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	json "github.com/goccy/go-json"
	hjson "github.com/hjson/hjson-go/v4"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// ParseLenient decodes plan data into v, trying progressively more
// forgiving strategies:
//
//  1. Strict JSON.
//  2. Hjson (comments, unquoted keys), normalized through a plain value so
//     struct tags still apply.
//  3. JSON repair (mismatched quotes, truncation, markdown fences).
//
// Exported plan files get hand-edited; a missing comma should not cost the
// user their plan.
func ParseLenient(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	var loose interface{}
	if err := hjson.Unmarshal(data, &loose); err == nil {
		normalized, err := json.Marshal(loose)
		if err == nil {
			if err := json.Unmarshal(normalized, v); err == nil {
				return nil
			}
		}
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	return fmt.Errorf("PLAN_PARSE_FAILED: input is not JSON, Hjson, or repairable JSON")
}

// ParseForm decodes plan data into bare form values via the lenient chain.
// Unknown fields are ignored; missing fields stay empty and sanitize to
// their defaults downstream.
func ParseForm(data []byte) (projection.FormValues, error) {
	var f projection.FormValues
	if err := ParseLenient(data, &f); err != nil {
		return projection.FormValues{}, err
	}
	return f, nil
}
