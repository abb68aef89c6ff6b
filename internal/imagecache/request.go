package imagecache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sakina/gosakina/internal/genai"
)

// Generator is the interface to the external image service.
// Implemented by genai.Client.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// KeyGate is the environment capability around user credentials: probing
// whether a usable key exists and prompting the user to (re)select one.
// A nil gate degrades to "assume a key exists".
type KeyGate interface {
	HasKey(ctx context.Context) bool
	SelectKey(ctx context.Context) error
}

// State of one image request.
type State string

const (
	StateIdle     State = "IDLE"
	StateLoading  State = "LOADING"
	StateResolved State = "RESOLVED"
	StateNeedsKey State = "NEEDS_KEY"
	StateError    State = "ERROR"
)

// Result is a snapshot of a request: its state, the payload once resolved
// and the failure once failed.
type Result struct {
	State State
	Data  string // data URI, set when State == StateResolved
	Err   error  // set when State is StateNeedsKey or StateError
}

// Service owns the shared pieces behind all image requests: the cache, the
// generator and the in-flight coalescing group. Concurrent requests for the
// same cache key share a single generation call.
type Service struct {
	cache *Cache
	gen   Generator
	gate  KeyGate
	sf    singleflight.Group
	log   zerolog.Logger
}

// NewService creates the request service. gate may be nil.
func NewService(cache *Cache, gen Generator, gate KeyGate, log zerolog.Logger) *Service {
	return &Service{cache: cache, gen: gen, gate: gate, log: log}
}

// Request is one UI-instance request for one image. Transitions out of
// NeedsKey and Error happen only through the explicit ProvideKey and Retry
// calls, never automatically.
type Request struct {
	svc    *Service
	key    string
	prompt string

	mu    sync.Mutex
	state State
	data  string
	err   error
}

// NewRequest creates a request for (cacheKey, prompt) in the Idle state.
func (s *Service) NewRequest(cacheKey, prompt string) *Request {
	return &Request{svc: s, key: cacheKey, prompt: prompt, state: StateIdle}
}

// Snapshot returns the current state without side effects.
func (r *Request) Snapshot() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Result{State: r.state, Data: r.data, Err: r.err}
}

// Start runs the request from Idle. A cached payload resolves immediately;
// otherwise one generation is attempted. Calling Start in any other state
// just returns the current snapshot.
func (r *Request) Start(ctx context.Context) Result {
	r.mu.Lock()
	if r.state != StateIdle {
		defer r.mu.Unlock()
		return Result{State: r.state, Data: r.data, Err: r.err}
	}
	r.state = StateLoading
	r.mu.Unlock()

	return r.resolve(ctx)
}

// ProvideKey is the user's "activate my key" action. Valid only from
// NeedsKey: it opens the credential selector, then retries generation once.
func (r *Request) ProvideKey(ctx context.Context) Result {
	r.mu.Lock()
	if r.state != StateNeedsKey {
		defer r.mu.Unlock()
		return Result{State: r.state, Data: r.data, Err: r.err}
	}
	r.state = StateLoading
	r.mu.Unlock()

	if r.svc.gate != nil {
		if err := r.svc.gate.SelectKey(ctx); err != nil {
			// Proceed anyway. The generation call is the real probe.
			r.svc.log.Warn().Err(err).Msg("key selection failed")
		}
	}
	return r.resolve(ctx)
}

// Retry is the user's manual retry action. Valid only from Error.
func (r *Request) Retry(ctx context.Context) Result {
	r.mu.Lock()
	if r.state != StateError {
		defer r.mu.Unlock()
		return Result{State: r.state, Data: r.data, Err: r.err}
	}
	r.state = StateLoading
	r.mu.Unlock()

	return r.resolve(ctx)
}

func (r *Request) resolve(ctx context.Context) Result {
	if data, ok := r.svc.cache.Get(r.key); ok {
		return r.finish(StateResolved, data, nil)
	}

	v, err, _ := r.svc.sf.Do(r.key, func() (interface{}, error) {
		data, err := r.svc.gen.GenerateImage(ctx, r.prompt)
		if err != nil {
			return nil, err
		}
		if err := r.svc.cache.Set(r.key, data); err != nil {
			// The image itself is still usable; it will be regenerated
			// next session instead of served from cache.
			r.svc.log.Warn().Err(err).Str("key", r.key).Msg("caching generated image failed")
		}
		return data, nil
	})

	if err != nil {
		return r.finish(r.classify(ctx, err), "", err)
	}
	return r.finish(StateResolved, v.(string), nil)
}

// classify decides between the two recoverable terminal states. A
// permission or quota failure always means NeedsKey, even when a credential
// exists: a previously valid key can itself run out of quota. For other
// failures the key probe breaks the tie.
func (r *Request) classify(ctx context.Context, err error) State {
	if genai.IsPermissionOrQuota(err) {
		return StateNeedsKey
	}
	if r.svc.gate != nil && !r.svc.gate.HasKey(ctx) {
		return StateNeedsKey
	}
	return StateError
}

func (r *Request) finish(state State, data string, err error) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	r.data = data
	r.err = err
	return Result{State: state, Data: data, Err: err}
}
