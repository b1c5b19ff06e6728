package claimserver

// Response is the envelope of every reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var (
	OK           = Response{Code: 0, Message: "ok"}
	ErrParam     = Response{Code: 1001, Message: "invalid parameters"}
	ErrTokenID   = Response{Code: 1002, Message: "invalid token id"}
	ErrAccount   = Response{Code: 1003, Message: "invalid account"}
	ErrSignature = Response{Code: 1004, Message: "invalid signature"}
	ErrIssued    = Response{Code: 1005, Message: "token already issued to another account"}
	ErrNotFound  = Response{Code: 1006, Message: "not found"}
	ErrNoAllowed = Response{Code: 1007, Message: "no allow-list loaded"}
	ErrSign      = Response{Code: 2001, Message: "signing failed"}
	ErrStore     = Response{Code: 2002, Message: "claim store unavailable"}
	ErrRegistry  = Response{Code: 2003, Message: "authority registry unavailable"}
)

func (r Response) WithData(data interface{}) Response {
	r.Data = data
	return r
}
