package response

import "net/http"

// Resp is the envelope around every response body, success or failure.
type Resp struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Data    any     `json:"data"`
}

func OK(data any) Resp {
	return Resp{Success: true, Data: data}
}

// Error builds a failure envelope; an empty customMsg falls back to the status text.
func Error(status int, customMsg string) Resp {
	msg := customMsg
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return Resp{Success: false, Message: &msg}
}
