package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a single entry of a Square v2 "errors" array
type APIError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// apiErrorBody covers both error envelopes: v2 sends {"errors":[...]},
// v1 sends {"type":"...","message":"..."}.
type apiErrorBody struct {
	Errors  []APIError `json:"errors"`
	Type    string     `json:"type"`
	Message string     `json:"message"`
}

// FromResponse builds an error for a non-200 response. The HTTP status becomes
// the code; the first Square error (v2) or the type/message pair (v1) is
// copied into metadata. Bodies that are not JSON only contribute the status.
func FromResponse(status int, body []byte) *Error {
	text := http.StatusText(status)
	if text == "" {
		text = "status " + strconv.Itoa(status)
	}
	err := New(status, "square: %s", strings.ToLower(text))

	var payload apiErrorBody
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return err
	}

	md := make(map[string]string, 4)
	switch {
	case len(payload.Errors) > 0:
		first := payload.Errors[0]
		putNonEmpty(md, "category", first.Category)
		putNonEmpty(md, "code", first.Code)
		putNonEmpty(md, "detail", first.Detail)
		putNonEmpty(md, "field", first.Field)
		if len(payload.Errors) > 1 {
			md["count"] = strconv.Itoa(len(payload.Errors))
		}
	case payload.Type != "" || payload.Message != "":
		putNonEmpty(md, "type", payload.Type)
		putNonEmpty(md, "detail", payload.Message)
	}

	return err.WithMetadata(md)
}

// APIErrors decodes every Square v2 error entry from body
func APIErrors(body []byte) []APIError {
	var payload apiErrorBody
	if json.Unmarshal(body, &payload) != nil {
		return nil
	}
	return payload.Errors
}

func putNonEmpty(m map[string]string, k, v string) {
	if v != "" {
		m[k] = v
	}
}
