package httpapi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/domain"
)

// bindDirectoryQuery reads q, status, page and pageSize (form style).
// Missing page defaults to 0 and missing pageSize to the default page size.
func bindDirectoryQuery(r *http.Request) (members.DirectoryQuery, error) {
	params := r.URL.Query()

	var (
		q        *string
		status   *string
		page     *int
		pageSize *int
	)
	if err := runtime.BindQueryParameter("form", true, false, "q", params, &q); err != nil {
		return members.DirectoryQuery{}, paramError("q", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &status); err != nil {
		return members.DirectoryQuery{}, paramError("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		return members.DirectoryQuery{}, paramError("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", params, &pageSize); err != nil {
		return members.DirectoryQuery{}, paramError("pageSize", err)
	}

	out := members.DirectoryQuery{PageSize: domain.DefaultPageSize}
	if q != nil {
		out.Query = *q
	}
	if status != nil {
		out.Status = *status
	}
	if page != nil {
		out.Page = *page
	}
	if pageSize != nil {
		out.PageSize = *pageSize
	}
	return out, nil
}

func paramError(name string, err error) *members.Error {
	return &members.Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    members.CodeValidation,
		Message: "invalid query parameter " + name,
		Details: map[string]any{name: err.Error()},
	}
}
