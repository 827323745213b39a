package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tjcastle/taskboard-api/internal/store"
)

// errBadQuery marks any syntactic problem in the list query parameters.
// Handlers answer it with MsgBadQueryParams; semantic problems (unknown
// fields, forbidden operators) surface later as store.ErrInvalidQuery.
var errBadQuery = errors.New("invalid query parameters")

// listParams is the parsed form of the where/sort/select/skip/limit/count
// query string.
type listParams struct {
	Query     store.Query
	CountOnly bool
}

// parseListParams parses the list query string into a structured query.
// JSON-valued parameters (where, sort, select) must be well-formed JSON
// objects; skip and limit must be non-negative integers.
func parseListParams(r *http.Request) (listParams, error) {
	values := r.URL.Query()
	var params listParams

	filter, err := parseWhere(values.Get("where"))
	if err != nil {
		return params, err
	}
	params.Query.Filter = filter

	sort, err := parseSort(values.Get("sort"))
	if err != nil {
		return params, err
	}
	params.Query.Sort = sort

	projection, err := parseSelect(values.Get("select"))
	if err != nil {
		return params, err
	}
	params.Query.Projection = projection

	if params.Query.Skip, err = parseNonNegativeInt(values.Get("skip")); err != nil {
		return params, err
	}
	if params.Query.Limit, err = parseNonNegativeInt(values.Get("limit")); err != nil {
		return params, err
	}

	params.CountOnly = values.Get("count") == "true"

	return params, nil
}

func parseWhere(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	var filter map[string]any
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, fmt.Errorf("%w: malformed where: %v", errBadQuery, err)
	}
	return filter, nil
}

// parseSort decodes a sort document such as {"deadline": 1, "name": -1},
// token by token so key order is preserved; with multiple sort keys the
// order is the precedence.
func parseSort(raw string) ([]store.SortField, error) {
	if raw == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed sort: %v", errBadQuery, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: sort must be an object", errBadQuery)
	}

	var fields []store.SortField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed sort: %v", errBadQuery, err)
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: malformed sort: %v", errBadQuery, err)
		}

		desc, err := sortDirection(value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, store.SortField{Field: key, Desc: desc})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: malformed sort: %v", errBadQuery, err)
	}

	return fields, nil
}

func sortDirection(value any) (desc bool, err error) {
	switch v := value.(type) {
	case float64:
		switch v {
		case 1:
			return false, nil
		case -1:
			return true, nil
		}
	case string:
		switch v {
		case "asc":
			return false, nil
		case "desc":
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: sort direction must be 1, -1, \"asc\", or \"desc\"", errBadQuery)
}

// parseSelect decodes a projection document such as {"name": 1, "_id": 0}.
// Values may be 0/1 or booleans.
func parseSelect(raw string) (map[string]bool, error) {
	if raw == "" {
		return nil, nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed select: %v", errBadQuery, err)
	}

	projection := make(map[string]bool, len(doc))
	for field, value := range doc {
		switch v := value.(type) {
		case float64:
			switch v {
			case 0:
				projection[field] = false
			case 1:
				projection[field] = true
			default:
				return nil, fmt.Errorf("%w: select values must be 0 or 1", errBadQuery)
			}
		case bool:
			projection[field] = v
		default:
			return nil, fmt.Errorf("%w: select values must be 0 or 1", errBadQuery)
		}
	}
	return projection, nil
}

func parseNonNegativeInt(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", errBadQuery, raw)
	}
	return n, nil
}
