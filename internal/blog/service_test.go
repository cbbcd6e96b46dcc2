package blog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/blogview/internal/apperr"
	"github.com/starford/blogview/internal/contentindex"
	"github.com/starford/blogview/internal/models"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testService(t *testing.T, records []models.ContentRecord) (*Service, *atomic.Int32) {
	t.Helper()
	srv, hits := testutil.IndexServer(t, records)
	src := contentindex.NewHTTPSource(srv.URL)
	return NewService(src, query.New(), models.BlogPostTemplate, testLogger()), hits
}

func TestListView_LoadMoreSequence(t *testing.T) {
	svc, hits := testService(t, testutil.Posts(25))
	v := svc.NewListView(context.Background(), ListOptions{Limit: 10, Pagination: true})

	var got []int
	for {
		page, err := v.LoadMore()
		if err != nil {
			t.Fatalf("LoadMore: %v", err)
		}
		if page.Total != 25 {
			t.Errorf("total = %d", page.Total)
		}
		got = append(got, len(page.Posts))
		if !page.ShowLoadMore {
			break
		}
	}
	if diff := cmp.Diff([]int{10, 10, 5}, got); diff != "" {
		t.Errorf("page sizes mismatch (-want +got):\n%s", diff)
	}
	if hits.Load() != 1 {
		t.Errorf("index fetched %d times, want 1", hits.Load())
	}
	if v.Cursor().Offset != 30 {
		t.Errorf("cursor offset = %d", v.Cursor().Offset)
	}
}

func TestListView_PaginationDisabledHidesButton(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(25))
	v := svc.NewListView(context.Background(), ListOptions{Limit: 10})

	page, err := v.LoadMore()
	if err != nil {
		t.Fatal(err)
	}
	if !page.HasMore || page.ShowLoadMore {
		t.Errorf("hasMore=%v showLoadMore=%v", page.HasMore, page.ShowLoadMore)
	}
}

func TestListView_DefaultLimit(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(12))
	page, err := svc.NewListView(context.Background(), ListOptions{}).LoadMore()
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 10 {
		t.Errorf("len = %d, want 10", len(page.Posts))
	}
}

func TestListView_FiltersApplied(t *testing.T) {
	a := testutil.Post("/blog/a", "2024-01-01", "go")
	a.Category = "eng"
	b := testutil.Post("/blog/b", "2024-01-02", "rust")
	b.Category = "eng"
	svc, _ := testService(t, []models.ContentRecord{a, b})

	page, err := svc.NewListView(context.Background(), ListOptions{Category: "eng", Tag: "go"}).LoadMore()
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 1 || page.Posts[0].Path != "/blog/a" {
		t.Errorf("posts = %+v", page.Posts)
	}
}

func TestListView_FetchFailureIsEmpty(t *testing.T) {
	srv := testutil.FailingServer(t, http.StatusBadGateway)
	svc := NewService(contentindex.NewHTTPSource(srv.URL), query.New(), "", testLogger())

	page, err := svc.NewListView(context.Background(), ListOptions{Limit: 10, Pagination: true}).LoadMore()
	if err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if page.Posts == nil || len(page.Posts) != 0 || page.Total != 0 || page.HasMore {
		t.Errorf("got %+v, want empty page", page)
	}
}

func TestListView_ReentrantLoadMoreIsBusy(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(3))
	v := svc.NewListView(context.Background(), ListOptions{Limit: 1})

	v.busy.Store(true)
	if _, err := v.LoadMore(); !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	if v.Cursor().Offset != 0 {
		t.Error("busy call must not advance the cursor")
	}
	v.busy.Store(false)
	if _, err := v.LoadMore(); err != nil {
		t.Errorf("LoadMore after release: %v", err)
	}
}

func TestListView_ConcurrentLoadMoreNeverOverlaps(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(50))
	v := svc.NewListView(context.Background(), ListOptions{Limit: 1})

	var (
		mu   sync.Mutex
		seen = map[string]int{}
		wg   sync.WaitGroup
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := v.LoadMore()
			if err != nil {
				return
			}
			mu.Lock()
			for _, p := range page.Posts {
				seen[p.Path]++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	for path, n := range seen {
		if n > 1 {
			t.Errorf("%s served %d times", path, n)
		}
	}
}

func TestTagView_Disclosure(t *testing.T) {
	var records []models.ContentRecord
	for i := range 25 {
		records = append(records, testutil.Post("/blog/p", "", strings.Repeat("t", i+1)))
	}
	svc, hits := testService(t, records)
	v := svc.NewTagView(context.Background(), TagOptions{Max: 20})

	first, err := v.Initial()
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Tags) != 20 || first.Remaining != 5 || first.Total != 25 {
		t.Fatalf("initial = %d tags, remaining %d, total %d", len(first.Tags), first.Remaining, first.Total)
	}
	more, err := v.ShowMore()
	if err != nil {
		t.Fatal(err)
	}
	if len(more.Tags) != 5 || more.Remaining != 0 {
		t.Errorf("more = %d tags, remaining %d", len(more.Tags), more.Remaining)
	}
	if more.Tags[0].Tag != strings.Repeat("t", 21) {
		t.Errorf("first revealed tag = %q", more.Tags[0].Tag)
	}
	if hits.Load() != 1 {
		t.Errorf("index fetched %d times, want 1", hits.Load())
	}
}

func TestTagView_FetchFailure(t *testing.T) {
	srv := testutil.FailingServer(t, http.StatusInternalServerError)
	svc := NewService(contentindex.NewHTTPSource(srv.URL), query.New(), "", testLogger())

	v := svc.NewTagView(context.Background(), TagOptions{})
	if !v.Failed() {
		t.Error("Failed() = false after fetch error")
	}
	page, err := v.Initial()
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Tags) != 0 || page.Total != 0 {
		t.Errorf("page = %+v", page)
	}
}

func TestTagView_ShowMoreBusy(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(2))
	v := svc.NewTagView(context.Background(), TagOptions{})
	v.busy.Store(true)
	if _, err := v.ShowMore(); !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	if _, err := v.Initial(); !errors.Is(err, apperr.ErrBusy) {
		t.Errorf("Initial err = %v, want ErrBusy", err)
	}
	v.busy.Store(false)
	if _, err := v.Initial(); err != nil {
		t.Errorf("Initial after release: %v", err)
	}
}

func TestService_QueryAndTags(t *testing.T) {
	records := []models.ContentRecord{
		testutil.Post("/blog/1", "2024-01-01", "a,b"),
		testutil.Post("/blog/2", "2024-01-02", "a"),
		testutil.Post("/blog/3", "2024-01-03", "b,a"),
	}
	svc, _ := testService(t, records)

	res := svc.Query(context.Background(), query.Criteria{Limit: 2, Tag: "a"})
	if res.Total != 3 || len(res.Posts) != 2 || !res.HasMore {
		t.Errorf("query = %+v", res)
	}

	page := svc.Tags(context.Background(), 0, 1)
	want := []models.TagFrequency{{Tag: "a", Count: 3}}
	if diff := cmp.Diff(want, page.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if page.Total != 2 || page.Remaining != 1 {
		t.Errorf("total=%d remaining=%d", page.Total, page.Remaining)
	}
}

func TestService_Post(t *testing.T) {
	rec := testutil.Post("/blog/hello", "2024-01-15", "go, web")
	rec.Author = "Ada"
	svc, _ := testService(t, []models.ContentRecord{rec})

	h, err := svc.Post(context.Background(), "/blog/hello")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if h.Author != "Ada" || h.Date != "2024-01-15" {
		t.Errorf("header = %+v", h)
	}
	if diff := cmp.Diff([]string{"go", "web"}, h.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.Post(context.Background(), "/blog/missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_PostSkipsOtherTemplates(t *testing.T) {
	listing := testutil.Post("/blog", "", "")
	listing.Template = "blog-list"
	about := testutil.Post("/about", "", "")
	about.Template = ""
	svc, _ := testService(t, []models.ContentRecord{listing, about})

	for _, path := range []string{"/blog", "/about"} {
		if _, err := svc.Post(context.Background(), path); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Post(%q) err = %v, want ErrNotFound", path, err)
		}
	}
}

func TestListView_StartsAtOffset(t *testing.T) {
	svc, _ := testService(t, testutil.Posts(5))
	v := svc.NewListView(context.Background(), ListOptions{Limit: 2, Offset: 3})

	page, err := v.LoadMore()
	if err != nil {
		t.Fatal(err)
	}
	got := []string{page.Posts[0].Path, page.Posts[1].Path}
	if diff := cmp.Diff([]string{"/blog/post-02", "/blog/post-01"}, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if page.HasMore {
		t.Error("HasMore = true at the end")
	}
	if v.Cursor().Offset != 5 {
		t.Errorf("cursor offset = %d, want 5", v.Cursor().Offset)
	}
}

func TestService_PostUnavailable(t *testing.T) {
	srv := testutil.FailingServer(t, http.StatusInternalServerError)
	svc := NewService(contentindex.NewHTTPSource(srv.URL), query.New(), "", testLogger())
	if _, err := svc.Post(context.Background(), "/blog/x"); !errors.Is(err, apperr.ErrIndexUnavailable) {
		t.Errorf("err = %v, want ErrIndexUnavailable", err)
	}
}
