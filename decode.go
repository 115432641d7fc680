package patternscope

import (
	"github.com/goccy/go-yaml"

	"github.com/patternscope/patternscope/internal/errs"
)

// DecodeValues parses raw as a JSON or YAML document (JSON is valid
// YAML, so one decoder covers both) and returns its top-level array as
// a column of string values. It is the shared validation path behind
// the EXTERNAL INTERFACES contract's NotAList/NonStringValues error
// kinds: the CLI's --file loader and the HTTP adapter's POST /profile
// body both accept a raw JSON/YAML array of values and call this
// instead of duplicating the check.
func DecodeValues(raw []byte) ([]string, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errs.ErrNotAList
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, errs.ErrNotAList
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errs.ErrNonStringValues
		}
		values = append(values, s)
	}
	return values, nil
}
