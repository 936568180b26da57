package http

import (
	"net/http"
	"strconv"

	"freight-booking-backend/internal/domain"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: "id", Msg: "must be a positive integer"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string, def int32) (int32, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return 0, domain.ValidationError{Field: key, Msg: "must be a non-negative integer"}
	}
	return int32(v), nil
}

type listResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"pageSize"`
}

func newListResponse[T any](items []T, total int64, page, pageSize int32) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
}
