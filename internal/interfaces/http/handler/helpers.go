package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/interfaces/http/dto"
)

// bindListRequest binds pagination query parameters, applying defaults
// for anything omitted
func bindListRequest(c *gin.Context) (dto.ListRequest, error) {
	req := dto.ListRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	defaults := dto.DefaultListRequest()
	if req.Page == 0 {
		req.Page = defaults.Page
	}
	if req.PageSize == 0 {
		req.PageSize = defaults.PageSize
	}
	if req.OrderBy == "" {
		req.OrderBy = defaults.OrderBy
	}
	if req.OrderDir == "" {
		req.OrderDir = defaults.OrderDir
	}
	return req, nil
}

// toFilter converts a bound list request to a repository filter
func toFilter(req dto.ListRequest, filters map[string]interface{}) shared.Filter {
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  filters,
	}
}

// bindRows decodes an upsert payload. Three shapes are accepted: a bare
// array of rows, an envelope {<listKey>: [...]}, and a single row
// object, which is treated as a one-element batch.
func bindRows[T any](c *gin.Context, listKey string) ([]T, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}

	var rows []T
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if list, ok := envelope[listKey]; ok {
		if err := json.Unmarshal(list, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var single T
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}
