// Package pagination implements the shared list/filter/paginate contract used
// by every collection endpoint: page/limit windowing, a single whitelisted
// sort key, free-text search, and a strict tri-state status filter.
//
// The count and page queries behind a listing run concurrently without a
// shared transaction, so totals may reflect a different snapshot than the
// returned page when writes interleave.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortBy    = "created_at"
	SortAsc          = "asc"
	SortDesc         = "desc"
	DefaultSortOrder = SortDesc
)

// ParamError reports a single invalid query parameter. It fails the request
// before any store access.
type ParamError struct {
	Field   string
	Message string
}

func (e ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Params is the validated pagination/sort/status portion of a list request.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	// Status is the tri-state soft-delete filter: nil = all records,
	// true = active only, false = soft-deleted only. Any status value other
	// than "true"/"false" is rejected rather than silently treated as
	// "active only".
	Status *bool
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse validates page, limit, sortBy, sortOrder and status from the query
// string. sortable is the entity-specific whitelist of sort keys; it must
// always include DefaultSortBy.
func Parse(values url.Values, sortable []string) (Params, error) {
	params := Params{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, ParamError{Field: "page", Message: "must be a number"}
		}
		if page < 1 {
			return Params{}, ParamError{Field: "page", Message: "must be at least 1"}
		}
		params.Page = page
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, ParamError{Field: "limit", Message: "must be a number"}
		}
		if limit < 1 || limit > MaxLimit {
			return Params{}, ParamError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
		}
		params.Limit = limit
	}

	if raw := strings.TrimSpace(values.Get("sortBy")); raw != "" {
		found := false
		for _, key := range sortable {
			if key == raw {
				found = true
				break
			}
		}
		if !found {
			return Params{}, ParamError{Field: "sortBy", Message: "must be one of: " + strings.Join(sortable, ", ")}
		}
		params.SortBy = raw
	}

	if raw := strings.TrimSpace(values.Get("sortOrder")); raw != "" {
		order := strings.ToLower(raw)
		if order != SortAsc && order != SortDesc {
			return Params{}, ParamError{Field: "sortOrder", Message: "must be asc or desc"}
		}
		params.SortOrder = order
	}

	status, err := ParseStatus(values.Get("status"))
	if err != nil {
		return Params{}, err
	}
	params.Status = status

	return params, nil
}

// ParseStatus parses the tri-state status parameter.
func ParseStatus(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "true":
		value := true
		return &value, nil
	case "false":
		value := false
		return &value, nil
	default:
		return nil, ParamError{Field: "status", Message: "must be true or false"}
	}
}

// Page is the pagination block attached to list responses.
type Page struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// BuildPage derives the envelope from the validated params and the filtered
// total: totalPages = ceil(total/limit), hasNext/hasPrev consistent with
// currentPage vs totalPages.
func BuildPage(params Params, totalItems int) Page {
	if totalItems < 0 {
		totalItems = 0
	}
	totalPages := (totalItems + params.Limit - 1) / params.Limit
	return Page{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: params.Limit,
		HasNextPage:  params.Page < totalPages,
		HasPrevPage:  params.Page > 1,
	}
}
