package schema

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// allowedFields are the document fields a client may filter or sort on.
var allowedFields = map[string]bool{
	"_id":         true,
	"id":          true,
	"title":       true,
	"slug":        true,
	"description": true,
	"tags":        true,
	"is_active":   true,
	"is_deleted":  true,
	"added_by":    true,
	"updated_by":  true,
	"created_at":  true,
	"updated_at":  true,
}

// allowedOperators is the Mongo operator whitelist for client filters.
var allowedOperators = map[string]bool{
	"$and":    true,
	"$or":     true,
	"$in":     true,
	"$nin":    true,
	"$eq":     true,
	"$ne":     true,
	"$gt":     true,
	"$gte":    true,
	"$lt":     true,
	"$lte":    true,
	"$exists": true,
	"$regex":  true,
}

const maxPageSize = 100

// ListQueryOptions are the client-controllable paging knobs of a list call.
type ListQueryOptions struct {
	Page     int      `json:"page"`
	Paginate int      `json:"paginate"`
	SortBy   string   `json:"sortBy"`
	Select   []string `json:"select"`
}

// ValidateFilter walks a client-supplied filter and rejects unknown fields
// and non-whitelisted operators before it is handed to the store.
func ValidateFilter(filter map[string]interface{}) error {
	if err := walkFilter(filter); err != nil {
		return ValidationErrors{{Field: "query", Tag: "filter", Message: err.Error()}}
	}
	return nil
}

func walkFilter(node map[string]interface{}) error {
	for key, val := range node {
		if strings.HasPrefix(key, "$") {
			if !allowedOperators[key] {
				return fmt.Errorf("operator %s is not allowed", key)
			}
			// $and / $or carry a list of sub-filters
			if list, ok := val.([]interface{}); ok {
				for _, item := range list {
					sub, ok := item.(map[string]interface{})
					if !ok {
						return fmt.Errorf("%s expects a list of filter objects", key)
					}
					if err := walkFilter(sub); err != nil {
						return err
					}
				}
			}
			continue
		}

		if !allowedFields[key] {
			return fmt.Errorf("field %s is not filterable", key)
		}
		// value may itself be an operator object, e.g. {"created_at": {"$gte": ...}}
		if sub, ok := val.(map[string]interface{}); ok {
			for op := range sub {
				if strings.HasPrefix(op, "$") && !allowedOperators[op] {
					return fmt.Errorf("operator %s is not allowed", op)
				}
			}
		}
	}
	return nil
}

// ValidateOptions bounds pagination and checks sort/select fields.
func ValidateOptions(opts *ListQueryOptions) error {
	if opts == nil {
		return nil
	}
	// page 0 means unset and is defaulted to 1 downstream
	if opts.Page < 0 {
		return ValidationErrors{{Field: "page", Tag: "min", Message: "page must not be negative"}}
	}
	if opts.Paginate < 0 || opts.Paginate > maxPageSize {
		return ValidationErrors{{Field: "paginate", Tag: "max",
			Message: fmt.Sprintf("paginate must be between 0 and %d", maxPageSize)}}
	}
	if opts.SortBy != "" {
		field := strings.TrimPrefix(opts.SortBy, "-")
		if !allowedFields[field] {
			return ValidationErrors{{Field: "sortBy", Tag: "oneof",
				Message: fmt.Sprintf("cannot sort by %s", field)}}
		}
	}
	for _, f := range opts.Select {
		if !allowedFields[f] {
			return ValidationErrors{{Field: "select", Tag: "oneof",
				Message: fmt.Sprintf("cannot select %s", f)}}
		}
	}
	return nil
}

// BuildFilter converts a validated client filter into a bson.M, translating
// "id" keys to "_id" with parsed ObjectIDs. Call ValidateFilter first.
func BuildFilter(filter map[string]interface{}) (bson.M, error) {
	out := bson.M{}
	for key, val := range filter {
		switch key {
		case "id", "_id":
			converted, err := convertIDValue(val)
			if err != nil {
				return nil, ValidationErrors{{Field: key, Tag: "objectid", Message: err.Error()}}
			}
			out["_id"] = converted
		case "$and", "$or":
			list, ok := val.([]interface{})
			if !ok {
				return nil, ValidationErrors{{Field: key, Tag: "filter",
					Message: fmt.Sprintf("%s expects a list of filter objects", key)}}
			}
			subs := make([]bson.M, 0, len(list))
			for _, item := range list {
				sub, _ := item.(map[string]interface{})
				built, err := BuildFilter(sub)
				if err != nil {
					return nil, err
				}
				subs = append(subs, built)
			}
			out[key] = subs
		default:
			out[key] = val
		}
	}
	return out, nil
}

// convertIDValue parses a raw id filter value (hex string or {$in: [...]}).
func convertIDValue(val interface{}) (interface{}, error) {
	switch v := val.(type) {
	case string:
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, fmt.Errorf("invalid object id %q", v)
		}
		return oid, nil
	case map[string]interface{}:
		converted := bson.M{}
		for op, inner := range v {
			list, ok := inner.([]interface{})
			if !ok {
				return nil, fmt.Errorf("id operator %s expects a list", op)
			}
			oids := make([]primitive.ObjectID, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("id values must be strings")
				}
				oid, err := primitive.ObjectIDFromHex(s)
				if err != nil {
					return nil, fmt.Errorf("invalid object id %q", s)
				}
				oids = append(oids, oid)
			}
			converted[op] = oids
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("unsupported id filter value")
	}
}

// ParseObjectIDs converts a list of hex strings, failing on the first bad one.
func ParseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, s := range ids {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, ValidationErrors{{Field: "ids", Tag: "objectid",
				Message: fmt.Sprintf("invalid object id %q", s)}}
		}
		out = append(out, oid)
	}
	return out, nil
}
