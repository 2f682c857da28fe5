package panel

// MaxPageSize bounds every paged read.
const MaxPageSize = 1000

// Page is one window over a device table.
type Page[T any] struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Data       []T `json:"data"`
}

// window normalizes page and size against total and returns the half-open
// index range [offset, limit) to fetch. A size of -1 selects everything.
func window(page, size, total int) (int, int, int, int) {
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if size > total {
		size = total
	}
	if size == -1 {
		size = total
		page = 0
	}
	if page < 0 || size <= 0 || page > total/size {
		return page, size, 0, 0
	}
	offset := page * size
	limit := offset + size
	if limit > total {
		limit = total
	}
	return page, size, offset, limit
}

// collect fetches the items of one page one at a time. fetch receives the
// zero-based table index.
func collect[T any](page, size, total int, fetch func(i int) (T, error)) (Page[T], error) {
	page, size, offset, limit := window(page, size, total)
	out := Page[T]{Page: page, PageSize: size, TotalCount: total, Data: make([]T, 0, limit-offset)}
	for i := offset; i < limit; i++ {
		item, err := fetch(i)
		if err != nil {
			return Page[T]{}, err
		}
		out.Data = append(out.Data, item)
	}
	return out, nil
}
