//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/sakina/gosakina/internal/catalog"
	"github.com/sakina/gosakina/internal/config"
	"github.com/sakina/gosakina/internal/genai"
	"github.com/sakina/gosakina/internal/imagecache"
	"github.com/sakina/gosakina/internal/journal"
	"github.com/sakina/gosakina/internal/kv"
	"github.com/sakina/gosakina/internal/logging"
	"github.com/sakina/gosakina/internal/prefs"
	"github.com/sakina/gosakina/internal/reframe"
)

// Version info
const Version = "1.0.0"

// Global state
var (
	kvStore  kv.Store
	entries  *journal.Store
	userPref *prefs.Prefs
	llm      *genai.Client
	reframer *reframe.Reframer
	images   *imagecache.Service

	// One live request per cache key; provideKey and retryImage address the
	// request created by the last requestImage call for that key.
	imageReqs = map[string]*imagecache.Request{}
)

func main() {
	println("[GoSakina] WASM Ready v" + Version)

	js.Global().Set("GoSakina", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		// Journal API
		"saveEntry":    js.FuncOf(saveEntry),
		"queryEntries": js.FuncOf(queryEntries),
		"getEntry":     js.FuncOf(getEntry),
		"journalCount": js.FuncOf(journalCount),
		"clearJournal": js.FuncOf(clearJournal),
		// AI API
		"getReframe": js.FuncOf(getReframe),
		// Image API
		"requestImage": js.FuncOf(requestImage),
		"provideKey":   js.FuncOf(provideKey),
		"retryImage":   js.FuncOf(retryImage),
		// Preference API
		"getPrefs":   js.FuncOf(getPrefs),
		"setTheme":   js.FuncOf(setTheme),
		"setPremium": js.FuncOf(setPremium),
		// Catalog API
		"listTracks":      js.FuncOf(listTracks),
		"trackById":       js.FuncOf(trackByID),
		"dareSteps":       js.FuncOf(dareSteps),
		"dailyChallenges": js.FuncOf(dailyChallenges),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize wires the whole core against an IndexedDB-backed filesystem.
// Args: [] (uses the configured database name).
func initialize(this js.Value, args []js.Value) interface{} {
	cfg, err := config.Load()
	if err != nil {
		return errorResult("config: " + err.Error())
	}

	fs, err := indexeddb.NewFS(context.Background(), cfg.DataDir, indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}
	kvStore, err = kv.NewFSStore(fs, "kv")
	if err != nil {
		return errorResult("failed to open kv store: " + err.Error())
	}

	entries, err = journal.NewStore(kvStore, logging.New("journal"))
	if err != nil {
		return errorResult("failed to load journal: " + err.Error())
	}
	userPref, err = prefs.Load(kvStore, logging.New("prefs"))
	if err != nil {
		return errorResult("failed to load prefs: " + err.Error())
	}

	llm = genai.NewClient(genai.Config{
		BaseURL:    cfg.GenAIBaseURL,
		APIKey:     cfg.GenAIAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Timeout:    cfg.GenAITimeout,
	}, logging.New("genai"))
	reframer = reframe.New(llm, logging.New("reframe"))

	cache := imagecache.NewCache(kvStore, logging.New("imagecache"))
	images = imagecache.NewService(cache, llm, newBrowserKeyGate(llm), logging.New("images"))

	return successResult("initialized")
}

// ============================================================
// Journal API
// ============================================================

// saveEntry: [entryJSON string]
// entryJSON carries moodLevel, traps, originalThought and reframe; id and
// timestamp are assigned here. Returns the stored entry.
func saveEntry(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: entryJSON (string)")
	}
	if entries == nil {
		return errorResult("not initialized")
	}

	var in struct {
		MoodLevel       int                    `json:"moodLevel"`
		Traps           []journal.ThinkingTrap `json:"traps"`
		OriginalThought string                 `json:"originalThought"`
		Reframe         string                 `json:"reframe"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &in); err != nil {
		return errorResult("invalid entry json: " + err.Error())
	}

	entry := journal.New(in.MoodLevel, in.Traps, in.OriginalThought, in.Reframe)
	if err := entries.Append(entry); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return jsonResult(entry)
}

// queryEntries: [specJSON string] -> JSON array of entries
func queryEntries(this js.Value, args []js.Value) interface{} {
	if entries == nil {
		return errorResult("not initialized")
	}

	var spec journal.QuerySpec
	if len(args) >= 1 && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &spec); err != nil {
			return errorResult("invalid query json: " + err.Error())
		}
	}
	return jsonResult(entries.Query(spec))
}

// getEntry: [id string]
func getEntry(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: id (string)")
	}
	if entries == nil {
		return errorResult("not initialized")
	}

	entry := entries.Get(args[0].String())
	if entry == nil {
		return errorResult("entry not found: " + args[0].String())
	}
	return jsonResult(entry)
}

func journalCount(this js.Value, args []js.Value) interface{} {
	if entries == nil {
		return errorResult("not initialized")
	}
	return entries.Count()
}

func clearJournal(this js.Value, args []js.Value) interface{} {
	if entries == nil {
		return errorResult("not initialized")
	}
	if err := entries.Clear(); err != nil {
		return errorResult("clear failed: " + err.Error())
	}
	return successResult("cleared")
}

// ============================================================
// AI API
// ============================================================

// getReframe: [thought string, trapsJSON string, callback func(string)]
// Always calls back with a usable Arabic reframe, falling back to the
// built-in text when the service is unavailable.
func getReframe(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: thought, trapsJSON, callback")
	}
	if reframer == nil {
		return errorResult("not initialized")
	}

	thought := args[0].String()
	var traps []journal.ThinkingTrap
	if err := json.Unmarshal([]byte(args[1].String()), &traps); err != nil {
		return errorResult("invalid traps json: " + err.Error())
	}
	callback := args[2]

	go func() {
		text := reframer.Reframe(context.Background(), thought, traps)
		callback.Invoke(text)
	}()
	return successResult("reframing")
}

// ============================================================
// Image API
// ============================================================

// requestImage: [cacheKey string, prompt string, callback func(resultJSON)]
// Starts a request and calls back with its outcome. Concurrent requests for
// the same key share one generation call.
func requestImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: cacheKey, prompt, callback")
	}
	if images == nil {
		return errorResult("not initialized")
	}

	key := args[0].String()
	req := images.NewRequest(key, args[1].String())
	imageReqs[key] = req
	callback := args[2]

	go func() {
		callback.Invoke(imageResultJSON(req.Start(context.Background())))
	}()
	return successResult("loading")
}

// provideKey: [cacheKey string, callback func(resultJSON)]
// Valid only for a request waiting on a credential.
func provideKey(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: cacheKey, callback")
	}
	req, ok := imageReqs[args[0].String()]
	if !ok {
		return errorResult("no request for key: " + args[0].String())
	}
	callback := args[1]

	go func() {
		callback.Invoke(imageResultJSON(req.ProvideKey(context.Background())))
	}()
	return successResult("selecting key")
}

// retryImage: [cacheKey string, callback func(resultJSON)]
// Valid only for a failed request.
func retryImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: cacheKey, callback")
	}
	req, ok := imageReqs[args[0].String()]
	if !ok {
		return errorResult("no request for key: " + args[0].String())
	}
	callback := args[1]

	go func() {
		callback.Invoke(imageResultJSON(req.Retry(context.Background())))
	}()
	return successResult("retrying")
}

func imageResultJSON(res imagecache.Result) string {
	out := map[string]interface{}{
		"state": string(res.State),
	}
	if res.Data != "" {
		out["data"] = res.Data
	}
	if res.Err != nil {
		out["error"] = res.Err.Error()
	}
	jsonBytes, _ := json.Marshal(out)
	return string(jsonBytes)
}

// ============================================================
// Preference API
// ============================================================

func getPrefs(this js.Value, args []js.Value) interface{} {
	if userPref == nil {
		return errorResult("not initialized")
	}
	return jsonResult(map[string]interface{}{
		"theme":   string(userPref.Theme()),
		"premium": userPref.Premium(),
	})
}

// setTheme: [mode string] with mode one of light|dark|system
func setTheme(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: mode (string)")
	}
	if userPref == nil {
		return errorResult("not initialized")
	}
	if err := userPref.SetTheme(prefs.ThemeMode(args[0].String())); err != nil {
		return errorResult("set theme: " + err.Error())
	}
	return successResult("theme set")
}

// setPremium: [premium bool]
func setPremium(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: premium (bool)")
	}
	if userPref == nil {
		return errorResult("not initialized")
	}
	if err := userPref.SetPremium(args[0].Bool()); err != nil {
		return errorResult("set premium: " + err.Error())
	}
	return successResult("premium set")
}

// ============================================================
// Catalog API
// ============================================================

// listTracks: [filterJSON string] with mode, tab and search fields
func listTracks(this js.Value, args []js.Value) interface{} {
	var f catalog.Filter
	if len(args) >= 1 && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &f); err != nil {
			return errorResult("invalid filter json: " + err.Error())
		}
	}
	return jsonResult(catalog.FilterTracks(f))
}

// trackByID: [id string]
func trackByID(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: id (string)")
	}
	track := catalog.TrackByID(args[0].String())
	if track == nil {
		return errorResult("track not found: " + args[0].String())
	}
	return jsonResult(track)
}

func dareSteps(this js.Value, args []js.Value) interface{} {
	return jsonResult(catalog.DareSteps)
}

func dailyChallenges(this js.Value, args []js.Value) interface{} {
	return jsonResult(catalog.DailyChallenges)
}

// ============================================================
// Browser key gate
// ============================================================

// browserKeyGate bridges the host page's credential picker. When a key is
// (re)selected it refreshes the client's key source from the page.
type browserKeyGate struct {
	llm *genai.Client
}

func newBrowserKeyGate(llm *genai.Client) imagecache.KeyGate {
	if js.Global().Get("aistudio").IsUndefined() {
		return nil
	}
	return &browserKeyGate{llm: llm}
}

func (g *browserKeyGate) HasKey(ctx context.Context) bool {
	v, err := await(js.Global().Get("aistudio").Call("hasSelectedApiKey"))
	if err != nil {
		return false
	}
	return v.Truthy()
}

func (g *browserKeyGate) SelectKey(ctx context.Context) error {
	if _, err := await(js.Global().Get("aistudio").Call("openSelectKey")); err != nil {
		return err
	}
	g.llm.SetKeyFunc(func() string {
		proc := js.Global().Get("process")
		if proc.IsUndefined() {
			return ""
		}
		env := proc.Get("env")
		if env.IsUndefined() {
			return ""
		}
		key := env.Get("API_KEY")
		if key.Type() != js.TypeString {
			return ""
		}
		return key.String()
	})
	return nil
}

// await blocks on a JS promise. Only safe off the event loop, so every
// caller runs in a goroutine spawned by an exported function.
func await(promise js.Value) (js.Value, error) {
	done := make(chan struct{})
	var result js.Value
	var rejected bool

	var thenFn, catchFn js.Func
	thenFn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			result = args[0]
		}
		close(done)
		return nil
	})
	catchFn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			result = args[0]
		}
		rejected = true
		close(done)
		return nil
	})
	promise.Call("then", thenFn).Call("catch", catchFn)
	<-done
	thenFn.Release()
	catchFn.Release()

	if rejected {
		return result, errorFromJS(result)
	}
	return result, nil
}

func errorFromJS(v js.Value) error {
	msg := "promise rejected"
	if v.Type() == js.TypeObject && !v.Get("message").IsUndefined() {
		msg = v.Get("message").String()
	} else if v.Type() == js.TypeString {
		msg = v.String()
	}
	return &jsError{msg: msg}
}

type jsError struct{ msg string }

func (e *jsError) Error() string { return e.msg }

// ============================================================
// Result helpers
// ============================================================

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Marshal a payload result
func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult("marshal: " + err.Error())
	}
	return string(jsonBytes)
}
