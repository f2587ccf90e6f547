// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	_ "github.com/tomtom215/newsprep/docs"
	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedder"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/events"
	"github.com/tomtom215/newsprep/internal/llm"
	"github.com/tomtom215/newsprep/internal/quiz"
	"github.com/tomtom215/newsprep/internal/rag"
	"github.com/tomtom215/newsprep/internal/recommend"
	"github.com/tomtom215/newsprep/internal/search"
	"github.com/tomtom215/newsprep/internal/summarize"
	"github.com/tomtom215/newsprep/internal/topics"
)

// fakeDB is an in-memory article store satisfying every interface the
// services read through.
type fakeDB struct {
	mu           sync.Mutex
	articles     map[int64]*database.Article
	quizzes      map[int64]*database.Quiz
	interactions []database.Interaction
	summaries    map[int64]string

	pingErr error
	listErr error
	metaErr error
}

func int64Ptr(v int64) *int64 { return &v }

func newFakeDB() *fakeDB {
	day := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return &fakeDB{
		articles: map[int64]*database.Article{
			1: {ID: 1, Title: "Budget passes", Text: "The finance ministry said 42 banks in India will merge. Officials expect savings.", TopicID: int64Ptr(0), PublishedDate: day(3)},
			2: {ID: 2, Title: "Markets rally", Text: "Stocks rose 3 percent. Investors cheered the budget.", TopicID: int64Ptr(0), PublishedDate: day(2)},
			3: {ID: 3, Title: "Cup final", Text: "The team won the cup final in London. Fans celebrated.", TopicID: int64Ptr(1), PublishedDate: day(1)},
		},
		quizzes:   map[int64]*database.Quiz{},
		summaries: map[int64]string{},
	}
}

func (f *fakeDB) sorted() []database.Article {
	out := make([]database.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedDate.After(*out[j].PublishedDate) })
	return out
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func (f *fakeDB) GetArticle(_ context.Context, id int64) (*database.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, database.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeDB) ListArticles(_ context.Context, limit int) ([]database.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.sorted()
	return out[:min(limit, len(out))], nil
}

func (f *fakeDB) ArticleStats(_ context.Context, id int64) (*database.ArticleStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &database.ArticleStats{ArticleID: id}
	for _, in := range f.interactions {
		if in.ArticleID == id && in.EventType == "view" {
			stats.Views++
		}
	}
	return stats, nil
}

func (f *fakeDB) ArticleMeta(_ context.Context, ids []int64, excerptLen int) (map[int64]database.ArticleMeta, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	out := make(map[int64]database.ArticleMeta, len(ids))
	for _, id := range ids {
		if a, ok := f.articles[id]; ok {
			out[id] = database.ArticleMeta{ID: id, Title: a.Title, Excerpt: database.TruncateRunes(a.Text, excerptLen), TopicID: a.TopicID}
		}
	}
	return out, nil
}

func (f *fakeDB) ArticleIDsByTopic(_ context.Context, topicID int64) ([]int64, error) {
	var ids []int64
	for _, a := range f.sorted() {
		if a.TopicID != nil && *a.TopicID == topicID {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

func (f *fakeDB) ListCorpus(context.Context) ([]database.CorpusDoc, error) {
	docs := make([]database.CorpusDoc, 0, len(f.articles))
	for id := int64(1); id <= int64(len(f.articles)); id++ {
		a := f.articles[id]
		docs = append(docs, database.CorpusDoc{ID: a.ID, Title: a.Title, Text: a.Text, TopicID: a.TopicID, PublishedDate: a.PublishedDate})
	}
	return docs, nil
}

func (f *fakeDB) TopicCounts(context.Context) ([]database.TopicCount, error) {
	return []database.TopicCount{{TopicID: 0, Count: 2}, {TopicID: 1, Count: 1}}, nil
}

func (f *fakeDB) TopicArticles(_ context.Context, topicID int64, limit int) ([]database.Article, error) {
	var out []database.Article
	for _, a := range f.sorted() {
		if a.TopicID != nil && *a.TopicID == topicID && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDB) TopicArticleCount(ctx context.Context, topicID int64) (int64, error) {
	ids, _ := f.ArticleIDsByTopic(ctx, topicID)
	return int64(len(ids)), nil
}

func (f *fakeDB) RecordInteraction(_ context.Context, in *database.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interactions = append(f.interactions, *in)
	return nil
}

func (f *fakeDB) UpdateSummary(_ context.Context, id int64, summary string, _ []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries[id] = summary
	return nil
}

func (f *fakeDB) CreateQuiz(_ context.Context, q *database.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q.ID = int64(len(f.quizzes) + 1)
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeDB) GetQuiz(_ context.Context, id int64) (*database.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q, ok := f.quizzes[id]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("quiz %d: %w", id, database.ErrNotFound)
}

// echoLLM answers every prompt with a fixed reply.
type echoLLM struct{ reply string }

func (e echoLLM) Complete(context.Context, string) (string, error) { return e.reply, nil }

func (e echoLLM) Chat(context.Context, []llm.Message) (string, error) { return e.reply, nil }

type testEnv struct {
	db      *fakeDB
	handler http.Handler
}

type envOptions struct {
	unloadedEmbeddings bool
	noLLM              bool
	skipIndexBuild     bool
}

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db := newFakeDB()
	dir := t.TempDir()

	store, err := embedding.NewFromMatrix([]int64{1, 2, 3}, [][]float32{{1, 0}, {0.9, 0.1}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if opts.unloadedEmbeddings {
		store = embedding.NewStore(filepath.Join(dir, "missing.npy"), filepath.Join(dir, "missing_ids.npy"), logger)
	}

	signals := recommend.NewSignalSource(
		writeArtifact(t, dir, "collab.json", `{"1": [[3, 5], [2, 1]]}`),
		writeArtifact(t, dir, "popularity.json", `{"1": 3, "2": 10, "3": 1}`),
		0, logger)
	t.Cleanup(signals.Close)

	rec, err := recommend.NewService(recommend.DefaultConfig(), recommend.DefaultWeights(), store, db, signals, logger)
	if err != nil {
		t.Fatal(err)
	}

	searchSvc := search.NewService(search.DefaultConfig(), store, db, nil, logger)
	t.Cleanup(searchSvc.Close)

	var client llm.Client = echoLLM{reply: "Banks will merge."}
	var completer summarize.Completer = echoLLM{reply: `{"summary_paragraph":"Banks merge.","key_points":["merge"]}`}
	if opts.noLLM {
		client, completer = nil, nil
	}

	index := rag.NewIndex(db, embedder.NewHashEmbedder(32), rag.NewSplitter(200, 20), logger)
	if !opts.skipIndexBuild {
		if _, err := index.Build(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	assistant := rag.NewAssistant(index, client, rag.NewMemorySessionStore(time.Hour), rag.DefaultAssistantConfig(), logger)

	handler := NewHandler(Dependencies{
		DB:          db,
		Embeddings:  store,
		Recommender: rec,
		Search:      searchSvc,
		Topics:      topics.NewCatalog(db, topics.Keywords{0: {"budget", "banks", "tax"}}, logger),
		Events:      events.NewSyncIngestor(events.NewConsumer(db, nil, logger)),
		Index:       index,
		Assistant:   assistant,
		Summarizer:  summarize.NewService(db, completer, logger),
		Quizzes:     quiz.NewService(db, logger),
		Version:     "test",
	})
	router := NewRouter(handler, &config.ServerConfig{}, &config.SecurityConfig{RateLimitDisabled: true}, logger)
	return &testEnv{db: db, handler: router.SetupChi()}
}

func (e *testEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var resp APIResponse
	if strings.HasPrefix(target, "/api") && rec.Code != http.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestRoutes_StatusMapping(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	tests := []struct {
		method   string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK, ""},
		{http.MethodGet, "/api/health/live", "", http.StatusOK, ""},
		{http.MethodGet, "/api/health/ready", "", http.StatusOK, ""},

		{http.MethodGet, "/api/articles", "", http.StatusOK, ""},
		{http.MethodGet, "/api/articles?limit=0", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/articles?limit=abc", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/articles/1", "", http.StatusOK, ""},
		{http.MethodGet, "/api/articles/99", "", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodGet, "/api/articles/x", "", http.StatusBadRequest, ErrCodeValidation},

		{http.MethodGet, "/api/topics", "", http.StatusOK, ""},
		{http.MethodGet, "/api/topics/0", "", http.StatusOK, ""},
		{http.MethodGet, "/api/topics/7", "", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodGet, "/api/topics/-1", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/topics/0/example?n=1", "", http.StatusOK, ""},
		{http.MethodGet, "/api/topics/7/example", "", http.StatusNotFound, ErrCodeNotFound},

		{http.MethodGet, "/api/recommend/article/1?n=2", "", http.StatusOK, ""},
		{http.MethodGet, "/api/recommend/article/1?n=0", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/recommend/topic/0", "", http.StatusOK, ""},
		{http.MethodGet, "/api/recommend/collab/article/1", "", http.StatusOK, ""},
		{http.MethodGet, "/api/recommend/hybrid/article/1?alpha=0.5&beta=0.3", "", http.StatusOK, ""},
		{http.MethodGet, "/api/recommend/hybrid/article/1?alpha=0.9&beta=0.5", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/recommend/hybrid/article/1?alpha=-0.1", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/recommend/hybrid/article/1?alpha=NaN", "", http.StatusBadRequest, ErrCodeValidation},

		{http.MethodGet, "/api/search?q=budget", "", http.StatusOK, ""},
		{http.MethodGet, "/api/search?q=b", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/search", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/recommend?article_id=1&k=2", "", http.StatusOK, ""},
		{http.MethodGet, "/api/recommend?article_id=99", "", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodGet, "/api/recommend", "", http.StatusBadRequest, ErrCodeValidation},

		{http.MethodPost, "/api/events", `{"event":"view","item_id":1}`, http.StatusCreated, ""},
		{http.MethodPost, "/api/events", `{"event":"dance","item_id":1}`, http.StatusBadRequest, ErrCodeValidation},
		{http.MethodPost, "/api/events", `not json`, http.StatusBadRequest, ErrCodeValidation},

		{http.MethodPost, "/api/ask", `{"query":"What will banks do?"}`, http.StatusOK, ""},
		{http.MethodPost, "/api/ask", `{"query":"   "}`, http.StatusBadRequest, ErrCodeValidation},
		{http.MethodDelete, "/api/ask/sessions/abc", "", http.StatusOK, ""},

		{http.MethodGet, "/api/summarize?text=One.%20Two.%20Three.&type=extractive", "", http.StatusOK, ""},
		{http.MethodGet, "/api/summarize?text=One.&type=poem", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodGet, "/api/summarize", "", http.StatusBadRequest, ErrCodeValidation},
		{http.MethodPost, "/api/summarize/1", `{"abstractive":false}`, http.StatusOK, ""},
		{http.MethodPost, "/api/summarize/99", "", http.StatusNotFound, ErrCodeNotFound},

		{http.MethodPost, "/api/quiz/1", "", http.StatusCreated, ""},
		{http.MethodPost, "/api/quiz/99", "", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodGet, "/api/quiz/99", "", http.StatusNotFound, ErrCodeNotFound},

		{http.MethodGet, "/api/nope", "", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodPut, "/api/articles", "", http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec, resp := env.do(t, tt.method, tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if resp.Success != (tt.wantErr == "") {
				t.Errorf("success = %v, body %s", resp.Success, rec.Body.String())
			}
			if tt.wantErr != "" && (resp.Error == nil || resp.Error.Code != tt.wantErr) {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantErr)
			}
			if resp.Meta == nil || resp.Meta.Timestamp.IsZero() {
				t.Errorf("meta missing: %s", rec.Body.String())
			}
		})
	}
}

func TestRecommendByArticle_Body(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	rec, _ := env.do(t, http.MethodGet, "/api/recommend/article/1?n=2", "")

	var body struct {
		Data []recommend.Recommendation `json:"data"`
		Meta APIMeta                    `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 2 || body.Data[0].ID != 2 || body.Data[1].ID != 3 {
		t.Fatalf("data = %+v, want articles 2 then 3", body.Data)
	}
	if body.Data[0].Title != "Markets rally" || body.Data[0].Score <= body.Data[1].Score {
		t.Errorf("first recommendation = %+v", body.Data[0])
	}
	if body.Meta.Count == nil || *body.Meta.Count != 2 {
		t.Errorf("meta.count = %v, want 2", body.Meta.Count)
	}
}

func TestRecommend_EmbeddingsMissing(t *testing.T) {
	env := newTestEnv(t, envOptions{unloadedEmbeddings: true})

	for _, target := range []string{
		"/api/recommend/article/1",
		"/api/recommend/topic/0",
		"/api/recommend?article_id=1",
	} {
		rec, resp := env.do(t, http.MethodGet, target, "")
		if rec.Code != http.StatusServiceUnavailable || resp.Error == nil || resp.Error.Code != ErrCodeServiceUnavailable {
			t.Errorf("%s: status %d body %s, want 503 SERVICE_UNAVAILABLE", target, rec.Code, rec.Body.String())
		}
	}

	rec, resp := env.do(t, http.MethodGet, "/api/health", "")
	data, _ := resp.Data.(map[string]interface{})
	if rec.Code != http.StatusOK || data["status"] != "degraded" {
		t.Errorf("health = %d %s, want degraded", rec.Code, rec.Body.String())
	}
}

func TestRecommend_StoreFault(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.db.metaErr = errors.New("connection reset")

	rec, resp := env.do(t, http.MethodGet, "/api/recommend/article/1", "")
	if rec.Code != http.StatusServiceUnavailable || resp.Error == nil || resp.Error.Code != ErrCodeStoreUnavailable {
		t.Fatalf("status %d body %s, want 503 STORE_UNAVAILABLE", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Error("response leaks the store error")
	}
}

func TestInternalError_GenericMessage(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.db.listErr = errors.New("disk on fire")

	rec, resp := env.do(t, http.MethodGet, "/api/articles", "")
	if rec.Code != http.StatusInternalServerError || resp.Error == nil || resp.Error.Code != ErrCodeInternalError {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Error("response leaks the internal error")
	}
}

func TestAsk_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		opts envOptions
	}{
		{"no language model", envOptions{noLLM: true}},
		{"index not built", envOptions{skipIndexBuild: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.opts)
			rec, resp := env.do(t, http.MethodPost, "/api/ask", `{"query":"banks?"}`)
			if rec.Code != http.StatusServiceUnavailable || resp.Error.Code != ErrCodeServiceUnavailable {
				t.Errorf("status %d body %s, want 503", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAsk_SessionRoundTrip(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	_, resp := env.do(t, http.MethodPost, "/api/ask", `{"query":"What will banks do?"}`)
	data, _ := resp.Data.(map[string]interface{})
	sessionID, _ := data["session_id"].(string)
	if sessionID == "" || data["answer"] != "Banks will merge." {
		t.Fatalf("first answer = %+v", data)
	}

	_, resp = env.do(t, http.MethodPost, "/api/ask", fmt.Sprintf(`{"query":"And then?","session_id":%q}`, sessionID))
	data, _ = resp.Data.(map[string]interface{})
	if history, _ := data["history"].([]interface{}); len(history) != 2 {
		t.Errorf("history after two turns = %v", data["history"])
	}
}

func TestSummarizeArticle_DefaultsToAbstractive(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	rec, _ := env.do(t, http.MethodPost, "/api/summarize/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if got := env.db.summaries[1]; got != "Banks merge." {
		t.Errorf("stored summary = %q, want the abstractive one", got)
	}
}

func TestEvents_Persisted(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	for i := 0; i < 3; i++ {
		if rec, _ := env.do(t, http.MethodPost, "/api/events", `{"event":"view","item_id":2,"user_id":7}`); rec.Code != http.StatusCreated {
			t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
		}
	}

	_, resp := env.do(t, http.MethodGet, "/api/articles/2", "")
	data, _ := resp.Data.(map[string]interface{})
	stats, _ := data["stats"].(map[string]interface{})
	if stats["views"] != float64(3) {
		t.Errorf("stats = %v, want 3 views", data["stats"])
	}
}

func TestQuiz_CreateThenGet(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rec, resp := env.do(t, http.MethodPost, "/api/quiz/1", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d body %s", rec.Code, rec.Body.String())
	}
	created, _ := resp.Data.(map[string]interface{})
	id, _ := created["quiz_id"].(float64)

	rec, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/quiz/%d", int64(id)), "")
	got, _ := resp.Data.(map[string]interface{})
	if rec.Code != http.StatusOK || got["title"] != "Quiz: Budget passes" {
		t.Errorf("get status %d data %v", rec.Code, got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.do(t, http.MethodGet, "/api/health", "")

	rec, _ := env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Errorf("metrics status %d, api_requests_total present %v", rec.Code, strings.Contains(rec.Body.String(), "api_requests_total"))
	}
}

func TestSwaggerDocs(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	rec, _ := env.do(t, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", rec.Code)
	}
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Errorf("basePath = %q, want /api", doc.BasePath)
	}
	for _, path := range []string{"/health", "/recommend/hybrid/article/{id}", "/ask", "/events"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("doc.json is missing %s", path)
		}
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	rec, resp := env.do(t, http.MethodGet, "/api/topics", "")

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	id := rec.Header().Get("X-Request-ID")
	if id == "" || resp.Meta == nil || resp.Meta.RequestID != id {
		t.Errorf("request id header %q, meta %+v", id, resp.Meta)
	}
}
