package imagecache

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakina/gosakina/internal/genai"
	"github.com/sakina/gosakina/internal/kv"
)

// fakeGenerator scripts one outcome per call, in order.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int32
	results []func() (string, error)
	block   chan struct{} // if set, Generate waits until closed
}

func (g *fakeGenerator) GenerateImage(_ context.Context, _ string) (string, error) {
	if g.block != nil {
		<-g.block
	}
	n := atomic.AddInt32(&g.calls, 1)

	g.mu.Lock()
	defer g.mu.Unlock()
	if int(n) <= len(g.results) {
		return g.results[n-1]()
	}
	return "", errors.New("unscripted call")
}

func ok(data string) func() (string, error) {
	return func() (string, error) { return data, nil }
}

func fail(err error) func() (string, error) {
	return func() (string, error) { return "", err }
}

// fakeGate scripts the credential environment.
type fakeGate struct {
	hasKey   bool
	selected int
}

func (g *fakeGate) HasKey(context.Context) bool { return g.hasKey }
func (g *fakeGate) SelectKey(context.Context) error {
	g.selected++
	g.hasKey = true
	return nil
}

func newService(gen Generator, gate KeyGate) (*Service, *Cache) {
	cache := NewCache(kv.NewMemStore(), zerolog.Nop())
	return NewService(cache, gen, gate, zerolog.Nop()), cache
}

func quotaErr() error {
	return &genai.APIError{StatusCode: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
}

func TestStartResolvesAndCaches(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){ok("data:image/png;base64,A")}}
	svc, cache := newService(gen, nil)

	req := svc.NewRequest("relax-r1", "a calm sea")
	res := req.Start(context.Background())

	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "data:image/png;base64,A", res.Data)

	cached, okC := cache.Get("relax-r1")
	require.True(t, okC)
	assert.Equal(t, res.Data, cached)
}

func TestStartHitsCacheWithoutGenerating(t *testing.T) {
	gen := &fakeGenerator{}
	svc, cache := newService(gen, nil)
	require.NoError(t, cache.Set("relax-r1", "cached"))

	res := svc.NewRequest("relax-r1", "p").Start(context.Background())
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "cached", res.Data)
	assert.EqualValues(t, 0, atomic.LoadInt32(&gen.calls))
}

func TestQuotaErrorNeedsKeyEvenWithKey(t *testing.T) {
	// The gate says a key exists, yet a 429-class failure must still land
	// in NeedsKey: the existing key is the one out of quota.
	gen := &fakeGenerator{results: []func() (string, error){fail(quotaErr())}}
	svc, _ := newService(gen, &fakeGate{hasKey: true})

	res := svc.NewRequest("k", "p").Start(context.Background())
	assert.Equal(t, StateNeedsKey, res.State)
	assert.Error(t, res.Err)
}

func TestGenericErrorWithKeyIsError(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){fail(errors.New("network"))}}
	svc, _ := newService(gen, &fakeGate{hasKey: true})

	res := svc.NewRequest("k", "p").Start(context.Background())
	assert.Equal(t, StateError, res.State)
}

func TestGenericErrorWithoutKeyNeedsKey(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){fail(errors.New("whatever"))}}
	svc, _ := newService(gen, &fakeGate{hasKey: false})

	res := svc.NewRequest("k", "p").Start(context.Background())
	assert.Equal(t, StateNeedsKey, res.State)
}

func TestNilGateAssumesKeyExists(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){fail(errors.New("boom"))}}
	svc, _ := newService(gen, nil)

	res := svc.NewRequest("k", "p").Start(context.Background())
	assert.Equal(t, StateError, res.State)
}

func TestProvideKeyRetriesOnce(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){
		fail(quotaErr()),
		ok("data:image/png;base64,B"),
	}}
	gate := &fakeGate{hasKey: false}
	svc, _ := newService(gen, gate)

	req := svc.NewRequest("k", "p")
	res := req.Start(context.Background())
	require.Equal(t, StateNeedsKey, res.State)

	res = req.ProvideKey(context.Background())
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "data:image/png;base64,B", res.Data)
	assert.Equal(t, 1, gate.selected)
	assert.EqualValues(t, 2, atomic.LoadInt32(&gen.calls), "exactly one retry, no loop")
}

func TestRetryFromError(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){
		fail(errors.New("transient")),
		ok("data:image/png;base64,C"),
	}}
	svc, _ := newService(gen, nil)

	req := svc.NewRequest("k", "p")
	require.Equal(t, StateError, req.Start(context.Background()).State)

	res := req.Retry(context.Background())
	assert.Equal(t, StateResolved, res.State)
}

func TestTransitionGuards(t *testing.T) {
	gen := &fakeGenerator{results: []func() (string, error){ok("D")}}
	svc, _ := newService(gen, nil)

	req := svc.NewRequest("k", "p")

	// Retry and ProvideKey are no-ops before Start.
	assert.Equal(t, StateIdle, req.Retry(context.Background()).State)
	assert.Equal(t, StateIdle, req.ProvideKey(context.Background()).State)

	require.Equal(t, StateResolved, req.Start(context.Background()).State)

	// Resolved is terminal: further actions return the snapshot.
	res := req.Start(context.Background())
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "D", res.Data)
	assert.Equal(t, StateResolved, req.Retry(context.Background()).State)
	assert.EqualValues(t, 1, atomic.LoadInt32(&gen.calls))
}

func TestConcurrentRequestsCoalesce(t *testing.T) {
	gen := &fakeGenerator{
		results: []func() (string, error){ok("shared")},
		block:   make(chan struct{}),
	}
	svc, _ := newService(gen, nil)

	const n = 5
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.NewRequest("same-key", "p").Start(context.Background())
		}(i)
	}

	close(gen.block)
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, StateResolved, res.State)
		assert.Equal(t, "shared", res.Data)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&gen.calls), int32(1), "in-flight generations for one key are shared")
}
