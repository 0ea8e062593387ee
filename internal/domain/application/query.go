package application

import "strings"

// FindByCodeOrID resolves a tracking key against the collection by exact
// match on code or on national ID. The key must be shaped like a tracking
// code before any search happens; a malformed key is rejected even when an
// ID number equal to it exists. ID lookup carries no format constraint of
// its own, it only rides on keys that already pass the code pattern.
func FindByCodeOrID(apps []Application, key string) (*Application, error) {
	if !ValidCodeFormat(key) {
		return nil, ErrBadCodeFormat
	}
	for i := range apps {
		if apps[i].Code == key || apps[i].IDNumber == key {
			return &apps[i], nil
		}
	}
	return nil, ErrNotFound
}

// FilterByIDSubstring returns applications whose national ID contains the
// query, case-sensitively. A blank query returns the whole collection.
func FilterByIDSubstring(apps []Application, query string) []Application {
	query = strings.TrimSpace(query)
	if query == "" {
		return apps
	}
	var out []Application
	for _, app := range apps {
		if strings.Contains(app.IDNumber, query) {
			out = append(out, app)
		}
	}
	return out
}
