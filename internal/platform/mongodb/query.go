package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tjcastle/taskboard-api/internal/store"
)

// translateFilter converts a validated structured filter into a bson
// document. Values filtering on _id are converted from hex strings to
// ObjectIDs where possible so identifier filters match store-assigned ids;
// a non-ObjectID value is passed through unchanged and simply matches
// nothing.
func translateFilter(filter map[string]any) bson.M {
	out := bson.M{}
	for field, value := range filter {
		if field == "_id" {
			out[field] = translateIDValue(value)
			continue
		}
		out[field] = value
	}
	return out
}

func translateIDValue(value any) any {
	switch v := value.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			return oid
		}
		return v
	case map[string]any:
		out := bson.M{}
		for op, operand := range v {
			if op == "$in" {
				if list, ok := operand.([]any); ok {
					converted := make([]any, len(list))
					for i, elem := range list {
						converted[i] = translateIDValue(elem)
					}
					out[op] = converted
					continue
				}
			}
			out[op] = translateIDValue(operand)
		}
		return out
	default:
		return value
	}
}

// findOptions builds the driver options for a validated query: sort order,
// projection push-down, skip, and limit. A zero limit means no cap.
func findOptions(q store.Query) *options.FindOptions {
	opts := options.Find()

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, s := range q.Sort {
			dir := 1
			if s.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: s.Field, Value: dir})
		}
		opts.SetSort(sort)
	}

	if len(q.Projection) > 0 {
		projection := bson.D{}
		for field, include := range q.Projection {
			v := 0
			if include {
				v = 1
			}
			projection = append(projection, bson.E{Key: field, Value: v})
		}
		opts.SetProjection(projection)
	}

	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	return opts
}

// objectIDs converts hex ids to ObjectIDs, silently dropping malformed
// entries: an id that cannot exist cannot match a record either.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
