package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the embedded BaseModel so generic stores can assign ids and
// timestamps on any entity.
func (m *BaseModel) Meta() *BaseModel { return m }

// Key returns the record identifier.
func (m BaseModel) Key() uint { return m.ID }

// Param is a single named filter value.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of filter values. Order is insertion order and is
// preserved when the set is encoded into a query string.
type Params []Param

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, keeping its position, or appends it.
func (p *Params) Set(key string, value any) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

// Del removes key from the set.
func (p *Params) Del(key string) {
	out := (*p)[:0]
	for _, kv := range *p {
		if kv.Key != key {
			out = append(out, kv)
		}
	}
	*p = out
}

// Clone returns a copy that can be modified independently.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// PageRequest holds pagination, sorting, and filtering parameters.
// Page is 0-based.
type PageRequest struct {
	Page    int
	Size    int
	Sort    string
	Filters Params
}

// Params returns the request as an ordered parameter set: filters first, then
// page, size and sort.
func (r PageRequest) Params() Params {
	out := make(Params, 0, len(r.Filters)+3)
	out = append(out, r.Filters...)
	out = append(out, Param{Key: "page", Value: r.Page}, Param{Key: "size", Value: r.Size})
	if r.Sort != "" {
		out = append(out, Param{Key: "sort", Value: r.Sort})
	}
	return out
}

// Page is the paginated response envelope. Its JSON shape is the wire
// contract shared with every backend.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}
