package ports

import "context"

// Response is a raw reply from the XRPL backend
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the backend answered with a 2xx status
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Backend sends requests to the external XRPL backend. A non-2xx reply is
// not an error; only transport failures are.
type Backend interface {
	Do(ctx context.Context, method, path, bearer string, body []byte) (*Response, error)
}
