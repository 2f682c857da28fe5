package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

const defaultPageSize = 10

// listQuery is the query string of every list route. page counts from 0.
type listQuery struct {
	ip   string
	page int
	size int
}

// parseListQuery accepts page/size and the longer pageNumber/pageSize.
func parseListQuery(r *http.Request) (listQuery, error) {
	q := r.URL.Query()
	lq := listQuery{ip: q.Get("ip"), size: defaultPageSize}

	var err error
	if lq.page, err = queryInt(q.Get("page"), q.Get("pageNumber"), 0); err != nil {
		return listQuery{}, fmt.Errorf("page: %w", err)
	}
	if lq.size, err = queryInt(q.Get("size"), q.Get("pageSize"), defaultPageSize); err != nil {
		return listQuery{}, fmt.Errorf("size: %w", err)
	}
	if lq.size > panel.MaxPageSize {
		lq.size = panel.MaxPageSize
	}
	return lq, nil
}

func queryInt(v, alt string, def int) (int, error) {
	if v == "" {
		v = alt
	}
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// decodeBody fills v from the JSON body. A missing or unparsable body is
// ERROR_WRONG_DATA.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("empty body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}
