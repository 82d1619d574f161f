package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alexanderramin/tandem/internal/remote"
)

// RemoteCall records one request made to a FakeRemote.
type RemoteCall struct {
	Method   string
	Endpoint string
	Payload  json.RawMessage
}

// FakeRemote is a scriptable remote.Client. Submissions succeed unless a
// failure is set; fetches answer from Responses or fail with ErrStatus.
type FakeRemote struct {
	mu        sync.Mutex
	err       error
	failNext  int
	calls     []RemoteCall
	responses map[string]json.RawMessage
	onSubmit  func(endpoint string, payload json.RawMessage)
}

// NewFakeRemote returns a FakeRemote that accepts every submission.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{responses: make(map[string]json.RawMessage)}
}

// FailWith makes every call fail with err until cleared with FailWith(nil).
func (f *FakeRemote) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// FailNext makes the next n calls fail with remote.ErrUnavailable.
func (f *FakeRemote) FailNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = n
}

// Respond sets the body returned by Fetch(endpoint).
func (f *FakeRemote) Respond(endpoint string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[endpoint] = data
}

// OnSubmit registers a hook invoked after a submission is recorded, before
// the result is returned.
func (f *FakeRemote) OnSubmit(fn func(endpoint string, payload json.RawMessage)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSubmit = fn
}

func (f *FakeRemote) Submit(_ context.Context, endpoint string, payload any) remote.Result {
	data, err := json.Marshal(payload)
	if err != nil {
		return remote.Result{Err: err}
	}
	f.mu.Lock()
	f.calls = append(f.calls, RemoteCall{Method: "POST", Endpoint: endpoint, Payload: data})
	failure := f.nextFailure()
	hook := f.onSubmit
	f.mu.Unlock()

	if hook != nil {
		hook(endpoint, data)
	}
	if failure != nil {
		return remote.Result{Err: failure}
	}
	return remote.Result{Body: json.RawMessage(`{}`)}
}

func (f *FakeRemote) Fetch(_ context.Context, endpoint string) remote.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, RemoteCall{Method: "GET", Endpoint: endpoint})
	if failure := f.nextFailure(); failure != nil {
		return remote.Result{Err: failure}
	}
	body, ok := f.responses[endpoint]
	if !ok {
		return remote.Result{Err: &remote.StatusError{Code: 404}}
	}
	return remote.Result{Body: body}
}

func (f *FakeRemote) nextFailure() error {
	if f.failNext > 0 {
		f.failNext--
		return remote.ErrUnavailable
	}
	return f.err
}

// Calls returns a copy of the recorded calls.
func (f *FakeRemote) Calls() []RemoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RemoteCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// Submitted decodes every submitted payload as T, in call order.
func Submitted[T any](f *FakeRemote) []T {
	var out []T
	for _, c := range f.Calls() {
		if c.Method != "POST" {
			continue
		}
		var v T
		if err := json.Unmarshal(c.Payload, &v); err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}
