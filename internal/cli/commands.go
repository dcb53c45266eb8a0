package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

func newResourcesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the HR resources hrctl can address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, closeAll, err := opts.open()
			if err != nil {
				return err
			}
			defer closeAll()

			type resourceInfo struct {
				Name   string `json:"name"`
				Path   string `json:"path"`
				Title  string `json:"title"`
				Source string `json:"source"`
			}
			infos := make([]resourceInfo, 0, len(reg.Resources()))
			for _, res := range reg.Resources() {
				infos = append(infos, resourceInfo{Name: res.Name, Path: res.Path, Title: res.Title, Source: res.Kind()})
			}

			if opts.output == outputJSON {
				return writeJSON(out(cmd), infos)
			}
			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.Path, info.Name, info.Title, info.Source}
			}
			return writeTable(out(cmd), []string{"PATH", "NAME", "TITLE", "SOURCE"}, rows)
		},
	}
}

type listOptions struct {
	page    int
	size    int
	sort    string
	search  string
	filters []string
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var lo listOptions
	cmd := &cobra.Command{
		Use:   "list RESOURCE",
		Short: "Print one page of a resource",
		Example: `  hrctl list employees --filter status=ACTIVE --sort hireDate,desc
  hrctl list departments --search eng -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := lo.pageRequest()
			if err != nil {
				return err
			}

			reg, closeAll, err := opts.open()
			if err != nil {
				return err
			}
			defer closeAll()

			res, err := opts.lookup(reg, args[0])
			if err != nil {
				return err
			}
			view, err := res.List(cmd.Context(), req)
			if err != nil {
				return classify(err)
			}
			if opts.output == outputJSON {
				return writeJSON(out(cmd), viewJSON(view))
			}
			return writeView(out(cmd), view)
		},
	}

	cmd.Flags().IntVar(&lo.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&lo.size, "size", pkg.DefaultPageSize, "records per page")
	cmd.Flags().StringVar(&lo.sort, "sort", "", `sort order as "field,asc" or "field,desc"`)
	cmd.Flags().StringVar(&lo.search, "search", "", "free text search")
	cmd.Flags().StringArrayVar(&lo.filters, "filter", nil, "filter as key=value; repeat for more filters")
	return cmd
}

// pageRequest converts the 1-based flags into a 0-based request. A key
// given more than once becomes a multi-value filter.
func (lo listOptions) pageRequest() (domain.PageRequest, error) {
	if lo.page < 1 {
		return domain.PageRequest{}, withCode(exitUsage, fmt.Errorf("invalid --page %d: must be at least 1", lo.page))
	}
	if lo.size < 1 || lo.size > pkg.MaxPageSize {
		return domain.PageRequest{}, withCode(exitUsage, fmt.Errorf("invalid --size %d: must be between 1 and %d", lo.size, pkg.MaxPageSize))
	}
	if lo.sort != "" {
		if _, _, ok := pkg.ParseSort(lo.sort); !ok {
			return domain.PageRequest{}, withCode(exitUsage, fmt.Errorf("invalid --sort %q", lo.sort))
		}
	}

	var filters domain.Params
	if s := strings.TrimSpace(lo.search); s != "" {
		filters.Set("search", s)
	}
	for _, f := range lo.filters {
		key, value, ok := strings.Cut(f, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" {
			return domain.PageRequest{}, withCode(exitUsage, fmt.Errorf("invalid --filter %q: want key=value", f))
		}
		if value == "" {
			continue
		}
		switch prev, exists := filters.Get(key); {
		case !exists:
			filters.Set(key, value)
		case isStrings(prev):
			filters.Set(key, append(prev.([]string), value))
		default:
			filters.Set(key, []string{prev.(string), value})
		}
	}

	return domain.PageRequest{
		Page:    lo.page - 1,
		Size:    lo.size,
		Sort:    strings.TrimSpace(lo.sort),
		Filters: filters,
	}, nil
}

func isStrings(v any) bool {
	_, ok := v.([]string)
	return ok
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get RESOURCE ID",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			reg, closeAll, err := opts.open()
			if err != nil {
				return err
			}
			defer closeAll()

			res, err := opts.lookup(reg, args[0])
			if err != nil {
				return err
			}
			rec, err := res.Get(cmd.Context(), id)
			if err != nil {
				return classify(err)
			}
			return writeJSON(out(cmd), rec)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RESOURCE ID...",
		Short: "Delete records by id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint, 0, len(args)-1)
			for _, raw := range args[1:] {
				id, err := parseID(raw)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			reg, closeAll, err := opts.open()
			if err != nil {
				return err
			}
			defer closeAll()

			res, err := opts.lookup(reg, args[0])
			if err != nil {
				return err
			}
			// Every id is attempted; the first failure decides the exit code.
			var firstErr error
			for _, id := range ids {
				if err := res.Delete(cmd.Context(), id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %d: %v\n", res.Name, id, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				fmt.Fprintf(out(cmd), "deleted %s %d\n", res.Name, id)
			}
			return classify(firstErr)
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, withCode(exitUsage, fmt.Errorf("invalid id %q: must be a positive integer", raw))
	}
	return uint(id), nil
}
