package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"quiz-client/internal/backend"
)

type fakeLister struct {
	mu          sync.Mutex
	listCalls   []backend.QuizListParams
	searchCalls []backend.QuizListParams
}

func (f *fakeLister) ListQuizzes(_ context.Context, params backend.QuizListParams) (backend.QuizPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, params)
	return backend.QuizPage{Meta: backend.PageMeta{CurrentPage: params.Page}}, nil
}

func (f *fakeLister) SearchQuizzes(_ context.Context, params backend.QuizListParams) (backend.QuizPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, params)
	return backend.QuizPage{Meta: backend.PageMeta{CurrentPage: params.Page}}, nil
}

func (f *fakeLister) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls), len(f.searchCalls)
}

func (f *fakeLister) lastSearch() backend.QuizListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls[len(f.searchCalls)-1]
}

// updates collects OnUpdate deliveries so tests can wait for the async fetch.
type updates struct {
	mu    sync.Mutex
	pages []backend.QuizPage
	errs  []error
}

func (u *updates) record(page backend.QuizPage, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pages = append(u.pages, page)
	u.errs = append(u.errs, err)
}

func (u *updates) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pages)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestRefetchUsesListingWithoutQuery(t *testing.T) {
	api := &fakeLister{}
	browser := New(context.Background(), api, Config{})
	defer browser.Close()

	browser.Refetch()

	lists, searches := api.counts()
	if lists != 1 || searches != 0 {
		t.Fatalf("lists=%d searches=%d, want 1/0", lists, searches)
	}
	if got := api.listCalls[0]; got.Page != 1 || got.Limit != 20 {
		t.Fatalf("params = %+v", got)
	}
}

func TestQueryDebounceCollapsesRapidTyping(t *testing.T) {
	api := &fakeLister{}
	sink := &updates{}
	browser := New(context.Background(), api, Config{
		Debounce: 20 * time.Millisecond,
		OnUpdate: sink.record,
	})
	defer browser.Close()

	browser.SetQuery("h")
	browser.SetQuery("hi")
	browser.SetQuery("his")
	browser.SetQuery("history")

	waitFor(t, func() bool { return sink.count() >= 1 })

	lists, searches := api.counts()
	if lists != 0 || searches != 1 {
		t.Fatalf("lists=%d searches=%d, want 0/1", lists, searches)
	}
	if got := api.lastSearch(); got.Search != "history" {
		t.Fatalf("search = %q, want final query value", got.Search)
	}
}

func TestQueryChangeResetsPage(t *testing.T) {
	api := &fakeLister{}
	sink := &updates{}
	browser := New(context.Background(), api, Config{
		Page:     3,
		Debounce: 10 * time.Millisecond,
		OnUpdate: sink.record,
	})
	defer browser.Close()

	if browser.Page() != 3 {
		t.Fatalf("page = %d, want 3", browser.Page())
	}

	browser.SetQuery("go")
	waitFor(t, func() bool { return sink.count() >= 1 })

	if browser.Page() != 1 {
		t.Fatalf("page = %d, want reset to 1", browser.Page())
	}
	if got := api.lastSearch(); got.Page != 1 {
		t.Fatalf("fetched page = %d, want 1", got.Page)
	}
}

func TestTagChangeResetsPageAndFetchesImmediately(t *testing.T) {
	api := &fakeLister{}
	browser := New(context.Background(), api, Config{Page: 4})
	defer browser.Close()

	browser.SetTag("science")

	lists, _ := api.counts()
	if lists != 1 {
		t.Fatalf("lists = %d, want 1 immediate fetch", lists)
	}
	if got := api.listCalls[0]; got.Page != 1 || got.Tag != "science" {
		t.Fatalf("params = %+v", got)
	}
}

func TestClearedQueryFallsBackToListing(t *testing.T) {
	api := &fakeLister{}
	sink := &updates{}
	browser := New(context.Background(), api, Config{
		Debounce: 10 * time.Millisecond,
		OnUpdate: sink.record,
	})
	defer browser.Close()

	browser.SetQuery("history")
	waitFor(t, func() bool { return sink.count() >= 1 })

	browser.SetQuery("   ")
	waitFor(t, func() bool { return sink.count() >= 2 })

	lists, searches := api.counts()
	if searches != 1 || lists != 1 {
		t.Fatalf("lists=%d searches=%d, want 1/1", lists, searches)
	}
}

func TestCloseCancelsPendingFetch(t *testing.T) {
	api := &fakeLister{}
	sink := &updates{}
	browser := New(context.Background(), api, Config{
		Debounce: 20 * time.Millisecond,
		OnUpdate: sink.record,
	})

	browser.SetQuery("doomed")
	browser.Close()

	time.Sleep(60 * time.Millisecond)
	if sink.count() != 0 {
		t.Fatalf("expected no fetch after Close, got %d", sink.count())
	}
}
