package api

// Params are serialized as the JSON object body of a request.
type Params map[string]Value

// Request pairs an endpoint with its body params. It is built per call and not
// retained by the client.
type Request struct {
	Endpoint Endpoint
	Params   Params
}

// NewRequest builds a request for ep.
func NewRequest(ep Endpoint, params Params) Request {
	return Request{Endpoint: ep, Params: params}
}

// Response is the outcome of a single Send. StatusCode is 0 when no HTTP
// response was received.
type Response struct {
	Result[Value]
	Endpoint   Endpoint
	StatusCode int
}
