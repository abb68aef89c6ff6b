package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sakina/gosakina/internal/imagecache"
	"github.com/sakina/gosakina/internal/journal"
	"github.com/sakina/gosakina/internal/kv"
	"github.com/sakina/gosakina/internal/logging"
	"github.com/sakina/gosakina/internal/prefs"
)

func main() {
	fmt.Println("Testing journal store...")
	testJournal()

	fmt.Println("\nTesting preferences...")
	testPrefs()

	fmt.Println("\nTesting image cache...")
	testImages()

	fmt.Println("\n✅ All tests passed!")
}

func testJournal() {
	kvs := kv.NewMemStore()
	defer kvs.Close()

	s, err := journal.NewStore(kvs, logging.New("journal"))
	if err != nil {
		log.Fatalf("NewStore failed: %v", err)
	}

	entry := journal.New(3, []journal.ThinkingTrap{journal.TrapCatastrophizing},
		"سأفشل في العرض غداً", "التحضير الجيد يقلل من احتمال الفشل")
	if err := s.Append(entry); err != nil {
		log.Fatalf("Append failed: %v", err)
	}
	fmt.Println("  ✓ Append works")

	if got := s.Get(entry.ID); got == nil {
		log.Fatal("Get returned nil")
	}
	fmt.Println("  ✓ Get works")

	results := s.Query(journal.QuerySpec{Mood: journal.MoodLow})
	if len(results) != 1 {
		log.Fatalf("Query expected 1 entry, got %d", len(results))
	}
	fmt.Println("  ✓ Query works")

	// Reload from the same kv store to check persistence.
	reloaded, err := journal.NewStore(kvs, logging.New("journal"))
	if err != nil {
		log.Fatalf("reload failed: %v", err)
	}
	if reloaded.Count() != 1 {
		log.Fatalf("reload expected 1 entry, got %d", reloaded.Count())
	}
	fmt.Println("  ✓ Persistence works")
}

func testPrefs() {
	kvs := kv.NewMemStore()
	defer kvs.Close()

	p, err := prefs.Load(kvs, logging.New("prefs"))
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}
	if p.Theme() != prefs.ThemeSystem {
		log.Fatalf("default theme expected system, got %s", p.Theme())
	}
	fmt.Println("  ✓ Defaults work")

	if err := p.SetTheme(prefs.ThemeDark); err != nil {
		log.Fatalf("SetTheme failed: %v", err)
	}
	again, err := prefs.Load(kvs, logging.New("prefs"))
	if err != nil {
		log.Fatalf("reload failed: %v", err)
	}
	if again.Theme() != prefs.ThemeDark {
		log.Fatalf("persisted theme expected dark, got %s", again.Theme())
	}
	fmt.Println("  ✓ Theme round-trip works")
}

type stubGenerator struct {
	calls int
}

func (g *stubGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return "data:image/png;base64,c3R1Yg==", nil
}

func testImages() {
	kvs := kv.NewMemStore()
	defer kvs.Close()

	gen := &stubGenerator{}
	cache := imagecache.NewCache(kvs, logging.New("imagecache"))
	svc := imagecache.NewService(cache, gen, nil, logging.New("images"))

	req := svc.NewRequest("breathing", "A calm breathing exercise scene")
	res := req.Start(context.Background())
	if res.State != imagecache.StateResolved {
		log.Fatalf("expected RESOLVED, got %s (%v)", res.State, res.Err)
	}
	fmt.Println("  ✓ Generation works")

	// A second request for the same key must come from the cache.
	res = svc.NewRequest("breathing", "A calm breathing exercise scene").Start(context.Background())
	if res.State != imagecache.StateResolved {
		log.Fatalf("expected RESOLVED from cache, got %s", res.State)
	}
	if gen.calls != 1 {
		log.Fatalf("expected 1 generator call, got %d", gen.calls)
	}
	fmt.Println("  ✓ Cache hit works")
}
