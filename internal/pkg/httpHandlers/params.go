package httpHandlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	missingType    = "missing"
	missingMsg     = "Field required"
	intParsingType = "int_parsing"
	intParsingMsg  = "Input should be a valid integer, unable to parse string as an integer"
)

// parseOperands reads the a and b query parameters. Every bad parameter is
// reported, not only the first.
func parseOperands(request *http.Request) (int64, int64, error) {
	query := request.URL.Query()
	var issues []ValidationIssue

	a, issue := queryInt(query, "a")
	if issue != nil {
		issues = append(issues, *issue)
	}

	b, issue := queryInt(query, "b")
	if issue != nil {
		issues = append(issues, *issue)
	}

	if len(issues) > 0 {
		return 0, 0, &ValidationError{Issues: issues}
	}
	return a, b, nil
}

func queryInt(query url.Values, name string) (int64, *ValidationIssue) {
	if !query.Has(name) {
		return 0, &ValidationIssue{
			Loc:  []string{"query", name},
			Msg:  missingMsg,
			Type: missingType,
		}
	}

	// the last of repeated values wins
	values := query[name]
	raw := values[len(values)-1]
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ValidationIssue{
			Loc:   []string{"query", name},
			Msg:   intParsingMsg,
			Type:  intParsingType,
			Input: &raw,
		}
	}
	return value, nil
}
