// Command sample demonstrates the kestrel framework with a small item
// collection covering resource- and handler-level hooks, suffix routing,
// and structured errors.
//
// Run:
//
//	go run ./cmd/sample
//
// Print the route table:
//
//	go run ./cmd/sample -table
//
// Then explore:
//
//	GET    http://localhost:8080/items            — list items
//	POST   http://localhost:8080/items            — create item
//	GET    http://localhost:8080/items/{itemid}   — get item
//	DELETE http://localhost:8080/items/{itemid}   — delete item
//	DELETE http://localhost:8080/items            — clear collection
//	GET    http://localhost:8080/routes           — route table
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"

	"github.com/kestrelhq/kestrel"
)

type store struct {
	mu       sync.Mutex
	items    map[int]map[string]any
	sequence int
}

func (s *store) create(doc map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	doc["itemid"] = s.sequence
	s.items[s.sequence] = doc
	return s.sequence
}

func (s *store) get(id int) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.items[id]
	return doc, ok
}

func (s *store) list() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.items))
	for _, doc := range s.items {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["itemid"].(int) < out[j]["itemid"].(int)
	})
	return out
}

func (s *store) delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

func (s *store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int]map[string]any)
}

// countHook increments a response header each time it runs, making the hook
// chain visible to clients.
func countHook(_ *kestrel.Request, resp *kestrel.Response, _ any, _ kestrel.Params) error {
	n := 0
	if v := resp.GetHeader("X-Hook-Applied"); v != "" {
		n, _ = strconv.Atoi(v)
	}
	resp.SetHeader("X-Hook-Applied", strconv.Itoa(n+1))
	return nil
}

func newRouter(s *store) *kestrel.Router {
	items := kestrel.NewResource(kestrel.WithOwner(s)).
		Before(kestrel.HookFunc(countHook))

	items.Handle("GET", "collection", func(_ *kestrel.Request, resp *kestrel.Response, _ kestrel.Params) error {
		return resp.Media(s.list())
	}, kestrel.ParamMax("limit", 100))

	items.Handle("POST", "collection", func(_ *kestrel.Request, resp *kestrel.Response, params kestrel.Params) error {
		doc, ok := params["doc"].(map[string]any)
		if !ok {
			return kestrel.BadRequest("Missing body", "POST requires a JSON object body.")
		}
		id := s.create(doc)
		resp.SetHeader("Location", "/items/"+strconv.Itoa(id))
		resp.SetStatus(http.StatusCreated)
		return resp.Media(doc)
	}, kestrel.ParseBody("doc"))

	items.Handle("DELETE", "collection", func(req *kestrel.Request, resp *kestrel.Response, _ kestrel.Params) error {
		if req.Query("confirm") != "yes" {
			return kestrel.UnavailableForLegalReasons("bulk delete requires confirm=yes")
		}
		s.clear()
		resp.SetStatus(http.StatusNoContent)
		return nil
	})

	items.Get(func(_ *kestrel.Request, resp *kestrel.Response, params kestrel.Params) error {
		id, _ := params.GetInt("itemid")
		doc, ok := s.get(id)
		if !ok {
			return kestrel.NotFound()
		}
		return resp.Media(doc)
	}, kestrel.FieldInt("itemid"))

	items.Delete(func(_ *kestrel.Request, resp *kestrel.Response, params kestrel.Params) error {
		id, _ := params.GetInt("itemid")
		if !s.delete(id) {
			return kestrel.NotFound()
		}
		resp.SetStatus(http.StatusNoContent)
		return nil
	}, kestrel.FieldInt("itemid"))

	r := kestrel.New()
	r.Use(kestrel.Recovery(), kestrel.RequestID(), kestrel.Logger(slog.Default()))
	r.AddSuffix("/items", "collection", items)
	r.Add("/items/{itemid}", items)
	r.ServeTable("/routes")
	return r
}

func main() {
	tableFlag := false
	for _, arg := range os.Args[1:] {
		if arg == "-table" || arg == "--table" {
			tableFlag = true
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r := newRouter(&store{items: make(map[int]map[string]any)})

	if tableFlag {
		if err := r.WriteTableYAML(os.Stdout); err != nil {
			slog.Error("write table", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("listening", "addr", ":8080")
	if err := r.ListenAndServe(ctx, ":8080"); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
