package service

import (
	"fmt"

	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
)

// UpstreamError carries a non-2xx backend reply so it can be relayed as-is
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend responded with status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return core.ErrUpstream
}

func upstreamError(resp *ports.Response) error {
	return &UpstreamError{Status: resp.Status, Body: resp.Body}
}
