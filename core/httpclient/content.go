package httpclient

import "net/http"

// HTTP methods accepted by Client.Request
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
	MethodHead   = http.MethodHead
)

// Common Content-Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"

	ContentTypeOctetStream = "application/octet-stream"
)

// Common header names
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Bearer formats an Authorization header value for token
func Bearer(token string) string {
	return "Bearer " + token
}
