package serializer

// Response is the uniform envelope returned by every handler. There is
// deliberately no richer error taxonomy: the client shows Msg in a
// banner and retries by repeating the action.
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
}

const (
	CodeParamErr = 40001
	CodeAuthErr  = 40101
	CodeDBErr    = 50001
	CodeStoreErr = 50002
)

func Err(code int, msg string, err error) Response {
	res := Response{
		Code: code,
		Msg:  msg,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "invalid parameters"
	}
	return Err(CodeParamErr, msg, err)
}

func AuthErr(msg string, err error) Response {
	if msg == "" {
		msg = "unauthorized"
	}
	return Err(CodeAuthErr, msg, err)
}

func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database operation failed"
	}
	return Err(CodeDBErr, msg, err)
}

func StoreErr(msg string, err error) Response {
	if msg == "" {
		msg = "storage operation failed"
	}
	return Err(CodeStoreErr, msg, err)
}
