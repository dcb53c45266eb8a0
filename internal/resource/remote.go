package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
	"github.com/simp-lee/hrdesk/internal/transport"
)

// RemoteSource forwards every operation to the live REST backend:
//
//	GET    /{path}?filters&page&size&sort
//	GET    /{path}/{id}
//	POST   /{path}
//	PUT    /{path}/{id}
//	DELETE /{path}/{id}
//	POST   /{path}/{id}/{action}
type RemoteSource[T any, C Creator[T], U Patcher[T]] struct {
	def    *Definition[T]
	client *transport.Client
}

func NewRemoteSource[T any, C Creator[T], U Patcher[T]](def *Definition[T], client *transport.Client) *RemoteSource[T, C, U] {
	return &RemoteSource[T, C, U]{def: def, client: client}
}

func (s *RemoteSource[T, C, U]) Kind() string { return KindRemote }

func (s *RemoteSource[T, C, U]) List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error) {
	path := s.def.Path
	if q := pkg.EncodeQuery(req.Params()); q != "" {
		path += "?" + q
	}
	var page domain.Page[T]
	if err := s.client.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	return &page, nil
}

func (s *RemoteSource[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	if err := s.client.Get(ctx, s.itemPath(id), &rec); err != nil {
		return nil, s.wrap(id, err)
	}
	return &rec, nil
}

func (s *RemoteSource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	var rec T
	if err := s.client.Post(ctx, s.def.Path, in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RemoteSource[T, C, U]) Update(ctx context.Context, id uint, in U) (*T, error) {
	var rec T
	if err := s.client.Put(ctx, s.itemPath(id), in, &rec); err != nil {
		return nil, s.wrap(id, err)
	}
	return &rec, nil
}

func (s *RemoteSource[T, C, U]) Delete(ctx context.Context, id uint) error {
	return s.wrap(id, s.client.Delete(ctx, s.itemPath(id)))
}

func (s *RemoteSource[T, C, U]) Do(ctx context.Context, id uint, action string) (*T, error) {
	if _, err := s.def.action(action); err != nil {
		return nil, err
	}
	var rec T
	if err := s.client.Do(ctx, http.MethodPost, s.itemPath(id)+"/"+action, nil, &rec); err != nil {
		return nil, s.wrap(id, err)
	}
	return &rec, nil
}

func (s *RemoteSource[T, C, U]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", s.def.Path, id)
}

// wrap re-labels a backend 404 with this resource's name and id so callers
// see the same NotFound as from the local stores.
func (s *RemoteSource[T, C, U]) wrap(id uint, err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Code == domain.CodeNotFound {
		nf := domain.NotFound(s.def.Name, id)
		nf.Err = err
		return nf
	}
	return err
}
