package handler

import (
	"fmt"
	"net/http"
	"time"
)

const dateLayout = "2006-01-02"

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// requireDate parses a mandatory YYYY-MM-DD query parameter and answers 400
// when it is missing or malformed.
func requireDate(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	d, err := parseDateQuery(r, key)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s, expected YYYY-MM-DD", key))
		return time.Time{}, false
	}
	if d == nil {
		writeError(w, http.StatusBadRequest, key+" is required")
		return time.Time{}, false
	}
	return *d, true
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, invalid("date %q must be YYYY-MM-DD", value)
	}
	return t, nil
}
