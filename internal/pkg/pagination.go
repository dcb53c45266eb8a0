package pkg

import (
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"github.com/simp-lee/hrdesk/internal/domain"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// reservedParams lists query parameter names used for pagination/sorting, not for filtering.
var reservedParams = map[string]bool{
	"page": true,
	"size": true,
	"sort": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// ClampPage bounds a 0-based page to the range whose row offset page*size
// still fits in an int. A negative page becomes 0.
func ClampPage(page, size int) int {
	if page < 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return min(page, math.MaxInt/size-1)
}

type pageQuery struct {
	Page int    `schema:"page"`
	Size int    `schema:"size"`
	Sort string `schema:"sort"`
}

// Paginate slices one page out of items and wraps it in a page envelope.
// page is 0-based. A negative page is treated as 0 and a non-positive size as
// DefaultPageSize. Out-of-range pages yield empty content. The returned
// content never aliases items.
func Paginate[T any](items []T, page, size int) *domain.Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	page = ClampPage(page, size)

	total := len(items)
	start, end := total, total
	if page <= total/size {
		start = page * size
		end = min(start+size, total)
	}

	content := make([]T, end-start)
	copy(content, items[start:end])
	return NewPage(content, int64(total), page, size)
}

// NewPage builds an envelope around content already cut to one page, as
// returned by a SQL query or a remote backend.
func NewPage[T any](content []T, total int64, page, size int) *domain.Page[T] {
	if content == nil {
		content = []T{}
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &domain.Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// ParsePageRequest extracts pagination, sorting, and filtering parameters from query params.
// page is 0-based. Every other non-empty parameter becomes a filter; a
// parameter repeated in the query becomes a []string filter value.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	query := c.Request.URL.Query()

	var pq pageQuery
	// Malformed values leave the field at its zero value.
	_ = queryDecoder.Decode(&pq, query)

	if pq.Size < 1 {
		pq.Size = DefaultPageSize
	}
	if pq.Size > MaxPageSize {
		pq.Size = MaxPageSize
	}
	pq.Page = ClampPage(pq.Page, pq.Size)

	keys := make([]string, 0, len(query))
	for key := range query {
		if !reservedParams[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var filters domain.Params
	for _, key := range keys {
		values := slices.DeleteFunc(slices.Clone(query[key]), func(v string) bool { return v == "" })
		switch len(values) {
		case 0:
			continue
		case 1:
			filters = append(filters, domain.Param{Key: key, Value: values[0]})
		default:
			filters = append(filters, domain.Param{Key: key, Value: values})
		}
	}

	return domain.PageRequest{
		Page:    pq.Page,
		Size:    pq.Size,
		Sort:    strings.TrimSpace(pq.Sort),
		Filters: filters,
	}
}

// ParseSort splits "field,dir" into its parts. dir defaults to asc; an
// unknown direction or an empty field reports ok=false.
func ParseSort(s string) (field string, desc bool, ok bool) {
	field, dir, _ := strings.Cut(s, ",")
	field = strings.TrimSpace(field)
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return "", false, false
	}
	return field, desc, field != ""
}

// PageScope returns a GORM scope that applies LIMIT and OFFSET based on the page request.
func PageScope(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		size := req.Size
		if size <= 0 {
			size = DefaultPageSize
		}
		return db.Offset(ClampPage(req.Page, size) * size).Limit(size)
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the page request.
// columns maps the public field name to its column; other fields are silently ignored.
// Column names are validated against a strict pattern to prevent SQL injection.
// The primary key is always the last ordering term so pages are stable.
func Sort(req domain.PageRequest, columns map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field, desc, ok := ParseSort(req.Sort)
		if ok {
			if column, allowed := columns[field]; allowed && validFieldName.MatchString(column) {
				direction := " asc"
				if desc {
					direction = " desc"
				}
				db = db.Order(column + direction)
			}
		}
		return db.Order("id asc")
	}
}

// ValidColumn reports whether name is safe to interpolate as a column name.
func ValidColumn(name string) bool {
	return validFieldName.MatchString(name)
}
