package crud

import (
	"strconv"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
	"github.com/simp-lee/hrdesk/internal/table"
)

// pageLink is one numbered pagination link.
type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// listLinks holds every URL a list page links to. URLs are built here so the
// templates insert them whole.
type listLinks struct {
	Sort   map[string]string
	Pages  []pageLink
	Prev   string
	Next   string
	Export string
	Reset  string
}

// pageWindow is how many numbered links the pager shows.
const pageWindow = 7

func buildLinks(base string, state table.State, size int, p table.Pagination, columns []string) listLinks {
	l := listLinks{
		Sort:   make(map[string]string, len(columns)),
		Export: withQuery(base+"/export", queryParams(state, size, 0)),
		Reset:  base,
	}
	for _, key := range columns {
		next := state
		next.Filters = state.Filters.Clone()
		next.ToggleSort(key)
		l.Sort[key] = withQuery(base, queryParams(next, size, 0))
	}
	for _, n := range p.Window(pageWindow) {
		l.Pages = append(l.Pages, pageLink{Number: n, URL: withQuery(base, queryParams(state, size, n)), Current: n == p.Page})
	}
	if p.HasPrev() {
		l.Prev = withQuery(base, queryParams(state, size, p.Prev()))
	}
	if p.HasNext() {
		l.Next = withQuery(base, queryParams(state, size, p.Next()))
	}
	return l
}

// queryParams encodes the list state; page is 1-based and omitted when 0.
func queryParams(state table.State, size, page int) domain.Params {
	params := state.Filters.Clone()
	if sort := state.SortParam(); sort != "" {
		params.Set("sort", sort)
	}
	if size > 0 && size != pkg.DefaultPageSize {
		params.Set("size", strconv.Itoa(size))
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	return params
}

func withQuery(path string, params domain.Params) string {
	if q := pkg.EncodeQuery(params); q != "" {
		return path + "?" + q
	}
	return path
}
