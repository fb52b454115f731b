package response

import "net/http"

// Default messages per HTTP status; callers may override with their own text.
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusNotFound:              "Not Found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "request body too large",
	http.StatusInternalServerError:   "Internal server error",
	http.StatusServiceUnavailable:    "server busy",
	http.StatusGatewayTimeout:        "timeout",
}
