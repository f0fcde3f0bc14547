package weburl

import "github.com/rohmanhakim/weburl/pkg/form"

// SearchParams returns the query decoded as form pairs. The result is a
// snapshot; apply changes with SetSearchParams.
func (u *URL) SearchParams() *form.SearchParams {
	return form.NewSearchParams(u.query)
}

// SetSearchParams replaces the query with the serialization of params. An
// empty list removes the query.
func (u *URL) SetSearchParams(params *form.SearchParams) {
	serialized := params.String()
	if serialized == "" {
		u.query, u.hasQuery = "", false
		u.stripTrailingSpacesFromOpaquePath()
		return
	}
	u.query, u.hasQuery = serialized, true
}
