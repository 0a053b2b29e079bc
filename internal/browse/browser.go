// Package browse holds the listing view state: current page, page size, tag
// filter, and a debounced free-text query.
package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"quiz-client/internal/backend"
)

const (
	defaultLimit    = 20
	defaultDebounce = 500 * time.Millisecond
)

// Lister is the slice of the API client the browser needs.
type Lister interface {
	ListQuizzes(ctx context.Context, params backend.QuizListParams) (backend.QuizPage, error)
	SearchQuizzes(ctx context.Context, params backend.QuizListParams) (backend.QuizPage, error)
}

// Browser refetches whenever page, limit, tag, or the (debounced) query
// changes, picking the search endpoint when a query is present and the plain
// listing otherwise. Results arrive through the OnUpdate callback because
// query-driven fetches fire from a timer, not the caller's goroutine.
type Browser struct {
	api      Lister
	ctx      context.Context
	debounce time.Duration
	onUpdate func(backend.QuizPage, error)

	mu      sync.Mutex
	page    int
	limit   int
	tag     string
	query   string
	pending *time.Timer
}

type Config struct {
	Page     int
	Limit    int
	Tag      string
	Debounce time.Duration
	OnUpdate func(backend.QuizPage, error)
}

func New(ctx context.Context, api Lister, cfg Config) *Browser {
	page := cfg.Page
	if page <= 0 {
		page = 1
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	onUpdate := cfg.OnUpdate
	if onUpdate == nil {
		onUpdate = func(backend.QuizPage, error) {}
	}

	return &Browser{
		api:      api,
		ctx:      ctx,
		debounce: debounce,
		onUpdate: onUpdate,
		page:     page,
		limit:    limit,
		tag:      cfg.Tag,
	}
}

func (b *Browser) SetPage(page int) {
	b.mu.Lock()
	if page < 1 {
		page = 1
	}
	b.page = page
	b.mu.Unlock()
	b.fetch()
}

func (b *Browser) SetLimit(limit int) {
	b.mu.Lock()
	if limit < 1 {
		limit = defaultLimit
	}
	b.limit = limit
	b.page = 1
	b.mu.Unlock()
	b.fetch()
}

func (b *Browser) SetTag(tag string) {
	b.mu.Lock()
	b.tag = tag
	b.page = 1
	b.mu.Unlock()
	b.fetch()
}

// SetQuery schedules a refetch after the debounce interval. Rapid successive
// calls collapse into one fetch of the final value; the page resets to 1.
func (b *Browser) SetQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending.Stop()
	}
	b.pending = time.AfterFunc(b.debounce, func() {
		b.mu.Lock()
		b.query = query
		b.page = 1
		b.mu.Unlock()
		b.fetch()
	})
}

// Refetch reruns the current parameters immediately, bypassing the debounce.
func (b *Browser) Refetch() {
	b.fetch()
}

func (b *Browser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *Browser) fetch() {
	b.mu.Lock()
	params := backend.QuizListParams{
		Page:  b.page,
		Limit: b.limit,
		Tag:   b.tag,
	}
	query := strings.TrimSpace(b.query)
	b.mu.Unlock()

	var (
		page backend.QuizPage
		err  error
	)
	if query != "" {
		params.Search = query
		page, err = b.api.SearchQuizzes(b.ctx, params)
	} else {
		page, err = b.api.ListQuizzes(b.ctx, params)
	}
	b.onUpdate(page, err)
}

// Close cancels any pending debounced fetch.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}
