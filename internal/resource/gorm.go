package resource

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

// GormSource is the SQL data source. Filters are expressed as GORM scopes
// with the same semantics as the in-memory store.
type GormSource[T any, C Creator[T], U Patcher[T]] struct {
	def     *Definition[T]
	db      *gorm.DB
	columns map[string]string
	fields  map[string]pkg.Field
}

func NewGormSource[T any, C Creator[T], U Patcher[T]](def *Definition[T], db *gorm.DB) *GormSource[T, C, U] {
	t := reflect.TypeFor[T]()
	fields := make(map[string]pkg.Field)
	for _, f := range pkg.FieldsOf(t) {
		fields[f.Name] = f
	}
	return &GormSource[T, C, U]{
		def:     def,
		db:      db,
		columns: pkg.ColumnMap(t),
		fields:  fields,
	}
}

func (s *GormSource[T, C, U]) Kind() string { return KindDatabase }

func (s *GormSource[T, C, U]) List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error) {
	if req.Size <= 0 {
		req.Size = pkg.DefaultPageSize
	}
	req.Page = pkg.ClampPage(req.Page, req.Size)

	var total int64
	query := s.db.WithContext(ctx).Model(new(T)).Scopes(s.filterScopes(req.Filters)...)
	if err := query.Count(&total).Error; err != nil {
		return nil, dbError("counting "+s.def.Path, err)
	}

	var items []T
	err := s.db.WithContext(ctx).
		Scopes(s.filterScopes(req.Filters)...).
		Scopes(pkg.Sort(req, s.columns), pkg.PageScope(req)).
		Find(&items).Error
	if err != nil {
		return nil, dbError("listing "+s.def.Path, err)
	}
	return pkg.NewPage(items, total, req.Page, req.Size), nil
}

func (s *GormSource[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, s.lookupError(id, err)
	}
	return &rec, nil
}

func (s *GormSource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	rec := in.Build()
	meta(&rec).ID = 0
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, dbError("creating "+s.def.Name, err)
	}
	return &rec, nil
}

func (s *GormSource[T, C, U]) Update(ctx context.Context, id uint, in U) (*T, error) {
	return s.mutate(ctx, id, func(rec *T) error {
		in.Apply(rec)
		return nil
	})
}

func (s *GormSource[T, C, U]) Do(ctx context.Context, id uint, action string) (*T, error) {
	act, err := s.def.action(action)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, act)
}

func (s *GormSource[T, C, U]) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return dbError("deleting "+s.def.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(s.def.Name, id)
	}
	return nil
}

// mutate loads, changes and saves a record inside one transaction.
func (s *GormSource[T, C, U]) mutate(ctx context.Context, id uint, fn func(*T) error) (*T, error) {
	var rec T
	err := pkg.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return s.lookupError(id, err)
		}
		orig := *meta(&rec)
		if err := fn(&rec); err != nil {
			return err
		}
		m := meta(&rec)
		m.ID, m.CreatedAt = orig.ID, orig.CreatedAt
		if err := tx.Save(&rec).Error; err != nil {
			return dbError("saving "+s.def.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// filterScopes translates the filter chain into WHERE clauses: equality
// filters, then range filters, then the search group.
func (s *GormSource[T, C, U]) filterScopes(filters domain.Params) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	for _, name := range s.def.Equal {
		v, ok := filters.Get(name)
		if !ok || pkg.IsEmptyValue(v) {
			continue
		}
		column, ok := s.safeColumn(name)
		if !ok {
			continue
		}
		values := filterStrings(v)
		if len(values) == 0 {
			continue
		}
		typed := make([]any, len(values))
		for i, raw := range values {
			typed[i] = coerce(s.fields[name].Type, raw)
		}
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			if len(typed) == 1 {
				return db.Where(column+" = ?", typed[0])
			}
			return db.Where(column+" IN ?", typed)
		})
	}

	for _, r := range s.def.Ranges {
		v, ok := filters.Get(r.Param)
		if !ok || pkg.IsEmptyValue(v) {
			continue
		}
		column, ok := s.safeColumn(r.Field)
		if !ok {
			continue
		}
		op := " >= ?"
		if r.Op == AtMost {
			op = " <= ?"
		}
		bound := coerce(s.fields[r.Field].Type, pkg.FormatValue(v))
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(column+op, bound)
		})
	}

	if term := searchTerm(filters); term != "" && len(s.def.Search) > 0 {
		pattern := "%" + escapeLike(term) + "%"
		var clauses []string
		var args []any
		for _, name := range s.def.Search {
			column, ok := s.safeColumn(name)
			if !ok {
				continue
			}
			clauses = append(clauses, "LOWER("+column+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		if len(clauses) > 0 {
			where := "(" + strings.Join(clauses, " OR ") + ")"
			scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
				return db.Where(where, args...)
			})
		}
	}
	return scopes
}

func (s *GormSource[T, C, U]) safeColumn(field string) (string, bool) {
	column, ok := s.columns[field]
	if !ok || !pkg.ValidColumn(column) {
		return "", false
	}
	return column, true
}

func (s *GormSource[T, C, U]) lookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(s.def.Name, id)
	}
	return dbError("loading "+s.def.Name, err)
}

// dbError wraps a database failure. Unique-key violations become
// AlreadyExists; the rest are internal errors.
func dbError(msg string, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewAppError(domain.CodeAlreadyExists, msg+": duplicate value", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.NewAppError(domain.CodeInternal, msg, err)
}

// coerce converts a query-string value to the Go kind of the target field so
// drivers compare it with the right type. Unparseable values are passed
// through as strings.
func coerce(t reflect.Type, raw string) any {
	if t == nil {
		return raw
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return n
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
