package resource

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/transport"
)

// Source kinds reported by DataSource.Kind.
const (
	KindMemory   = "memory"
	KindDatabase = "database"
	KindRemote   = "remote"
)

// DataSource is the storage strategy behind a Client. Every implementation
// returns the same error taxonomy: NotFound for a missing id, Validation for
// rejected input, Transport for an unreachable backend.
type DataSource[T any, C Creator[T], U Patcher[T]] interface {
	List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id uint, in U) (*T, error)
	Delete(ctx context.Context, id uint) error
	Do(ctx context.Context, id uint, action string) (*T, error)
	Kind() string
}

// Backend is the composition-root choice of data source. Mock wins over the
// live backends; otherwise HTTP wins over DB.
type Backend struct {
	Mock bool
	DB   *gorm.DB
	HTTP *transport.Client
}

// Kind names the source Select will build.
func (b Backend) Kind() string {
	switch {
	case b.Mock:
		return KindMemory
	case b.HTTP != nil:
		return KindRemote
	default:
		return KindDatabase
	}
}

// Select builds the data source for def once, at startup. seed is only used
// by the in-memory store.
func Select[T any, C Creator[T], U Patcher[T]](b Backend, def *Definition[T], seed []T) (DataSource[T, C, U], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	switch b.Kind() {
	case KindMemory:
		return NewMemoryStore[T, C, U](def, seed), nil
	case KindRemote:
		return NewRemoteSource[T, C, U](def, b.HTTP), nil
	default:
		if b.DB == nil {
			return nil, errors.New("resource: live database backend selected without a database")
		}
		return NewGormSource[T, C, U](def, b.DB), nil
	}
}
