package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
)

type backendCall struct {
	Method string
	Path   string
	Bearer string
	Body   []byte
}

// fakeBackend answers by path and records every call
type fakeBackend struct {
	mu        sync.Mutex
	calls     []backendCall
	responses map[string]*ports.Response
	err       error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: make(map[string]*ports.Response)}
}

func (b *fakeBackend) reply(path string, status int, body string) {
	b.responses[path] = &ports.Response{Status: status, Body: []byte(body)}
}

func (b *fakeBackend) Do(_ context.Context, method, path, bearer string, body []byte) (*ports.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, backendCall{Method: method, Path: path, Bearer: bearer, Body: body})
	if b.err != nil {
		return nil, b.err
	}
	if resp, ok := b.responses[path]; ok {
		return resp, nil
	}
	return &ports.Response{Status: 404, Body: []byte(`{"error":"not found"}`)}, nil
}

func (b *fakeBackend) callsTo(path string) []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []backendCall
	for _, c := range b.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []core.Activity
	err     error
}

func (j *fakeJournal) Record(_ context.Context, a *core.Activity) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	a.ID = int64(len(j.entries) + 1)
	j.entries = append(j.entries, *a)
	return nil
}

func (j *fakeJournal) Recent(_ context.Context, userID int64, limit int) ([]core.Activity, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := []core.Activity{}
	for _, a := range j.entries {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID > out[k].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (j *fakeJournal) CountExchanged(_ context.Context, userID int64) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	n := 0
	for _, a := range j.entries {
		if a.UserID == userID && a.Exchanged() {
			n++
		}
	}
	return n, nil
}

func (j *fakeJournal) Close() error { return nil }

type fakePublisher struct {
	mu         sync.Mutex
	logouts    []string
	activities []core.ActivityKind
	fail       bool
}

func (p *fakePublisher) PublishLogout(_ context.Context, s *core.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("publisher down")
	}
	p.logouts = append(p.logouts, s.ID)
	return nil
}

func (p *fakePublisher) PublishActivity(_ context.Context, a *core.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("publisher down")
	}
	p.activities = append(p.activities, a.Kind)
	return nil
}
