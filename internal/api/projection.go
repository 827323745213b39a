package api

import (
	"encoding/json"

	"github.com/tjcastle/taskboard-api/internal/store"
)

// projectRecord shapes a record's JSON form according to the projection:
// inclusion projections keep only the selected fields (plus _id unless it
// is explicitly excluded), exclusion projections drop the named fields.
// With no projection the record passes through unchanged.
//
// The store already pushes the projection down; this pass controls which
// keys appear in the response body, mirroring how the underlying partial
// documents would serialize.
func projectRecord(record any, projection map[string]bool) any {
	if len(projection) == 0 {
		return record
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return record
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return record
	}

	if store.IsInclusion(projection) {
		out := make(map[string]any, len(projection)+1)
		if include, named := projection["_id"]; !named || include {
			if id, ok := doc["_id"]; ok {
				out["_id"] = id
			}
		}
		for field, include := range projection {
			if !include || field == "_id" {
				continue
			}
			if v, ok := doc[field]; ok {
				out[field] = v
			}
		}
		return out
	}

	for field, include := range projection {
		if !include {
			delete(doc, field)
		}
	}
	return doc
}

// projectRecords applies projectRecord to each element of a list, keeping
// the result JSON-serializable as an array.
func projectRecords[T any](records []T, projection map[string]bool) any {
	if len(projection) == 0 {
		return records
	}

	out := make([]any, len(records))
	for i := range records {
		out[i] = projectRecord(records[i], projection)
	}
	return out
}
