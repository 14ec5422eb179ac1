package wikipedia_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/service/wikipedia"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) wikipedia.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := wikipedia.New(srv.URL+"/w/api.php", wikipedia.WithHTTPClient(srv.Client()))
	gt.NoError(t, err).Required()
	return svc
}

func TestNew(t *testing.T) {
	_, err := wikipedia.New("not a url")
	gt.Value(t, err).NotNil()

	svc, err := wikipedia.New(wikipedia.DefaultEndpoint)
	gt.NoError(t, err).Required()
	gt.Value(t, svc).NotNil()
}

func TestSearch(t *testing.T) {
	t.Run("parses hits and strips snippet markup", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			gt.Value(t, q.Get("list")).Equal("search")
			gt.Value(t, q.Get("srsearch")).Equal("Science stub")
			gt.Value(t, q.Get("srlimit")).Equal("5")
			gt.Value(t, q.Get("format")).Equal("json")
			gt.Value(t, q.Get("origin")).Equal("*")
			gt.String(t, r.UserAgent()).Contains("stubscout")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"query":{"search":[
				{"title":"Example Stub","pageid":42,"snippet":"An <span class=\"searchmatch\">example</span> &amp; more"},
				{"title":"Other","pageid":7,"snippet":"plain"}
			]}}`))
		})

		hits := svc.Search(context.Background(), "Science stub", 5)
		gt.Array(t, hits).Length(2)
		gt.Value(t, hits[0]).Equal(model.SearchHit{Title: "Example Stub", PageID: 42, Snippet: "An example & more"})
		gt.Value(t, hits[1].Snippet).Equal("plain")
	})

	t.Run("upstream failure yields empty result", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		hits := svc.Search(context.Background(), "anything", 5)
		gt.Value(t, hits).NotNil()
		gt.Array(t, hits).Length(0)

		_, err := wikipedia.SearchStrict(context.Background(), svc, "anything", 5)
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
	})

	t.Run("API error body is an upstream failure", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"code":"badvalue","info":"bad"}}`))
		})

		_, err := wikipedia.SearchStrict(context.Background(), svc, "anything", 5)
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
	})
}

func TestCategories(t *testing.T) {
	t.Run("returns category titles", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Query().Get("prop")).Equal("categories")
			gt.Value(t, r.URL.Query().Get("cllimit")).Equal("50")
			_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Example Stub",
				"categories":[{"ns":14,"title":"Category:Science stubs"},{"ns":14,"title":"Category:Physics"}]}}}}`))
		})

		got := svc.Categories(context.Background(), "Example Stub")
		gt.Value(t, got).Equal([]string{"Category:Science stubs", "Category:Physics"})
	})

	t.Run("missing page yields empty", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"ns":0,"title":"Nope","missing":""}}}}`))
		})

		gt.Array(t, svc.Categories(context.Background(), "Nope")).Length(0)
	})
}

func TestDetails(t *testing.T) {
	t.Run("builds detail with derived URLs", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			gt.Value(t, q.Get("prop")).Equal("extracts|pageimages|categories")
			gt.Value(t, q.Get("exintro")).Equal("1")
			gt.Value(t, q.Get("pithumbsize")).Equal("200")
			_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Tidal Creek (Maine)",
				"extract":"A small creek.",
				"thumbnail":{"source":"https://upload.example/thumb.jpg","width":200,"height":150},
				"categories":[{"title":"Category:Geography stubs"}]}}}}`))
		})

		detail := svc.Details(context.Background(), "Tidal Creek (Maine)")
		gt.Value(t, detail).NotNil()
		gt.Value(t, detail.Title).Equal("Tidal Creek (Maine)")
		gt.Value(t, detail.Extract).Equal("A small creek.")
		gt.Value(t, detail.ThumbnailURL).Equal("https://upload.example/thumb.jpg")
		gt.Value(t, detail.Categories).Equal([]string{"Category:Geography stubs"})
		gt.String(t, detail.ViewURL).HasSuffix("/wiki/Tidal_Creek_%28Maine%29")
		gt.String(t, detail.EditURL).HasSuffix("/w/index.php?title=Tidal_Creek_%28Maine%29&action=edit")
	})

	t.Run("missing page is absent", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nope","missing":""}}}}`))
		})

		detail, err := wikipedia.DetailsStrict(context.Background(), svc, "Nope")
		gt.NoError(t, err).Required()
		gt.Value(t, detail).Nil()
	})

	t.Run("failure is absent", func(t *testing.T) {
		svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		gt.Value(t, svc.Details(context.Background(), "Anything")).Nil()
	})
}

func TestCategoryMembers(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gt.Value(t, q.Get("cmtitle")).Equal("Category:Science stubs")
		gt.Value(t, q.Get("cmlimit")).Equal("2")
		_, _ = w.Write([]byte(`{"query":{"categorymembers":[{"pageid":1,"ns":0,"title":"A"},{"pageid":2,"ns":0,"title":"B"}]}}`))
	})

	got := svc.CategoryMembers(context.Background(), "Category:Science stubs", 2)
	gt.Array(t, got).Length(2)
	gt.Value(t, got[1].Title).Equal("B")
}

func TestStripHTML(t *testing.T) {
	gt.Value(t, wikipedia.StripHTML("no markup")).Equal("no markup")
	gt.Value(t, wikipedia.StripHTML(`<span class="searchmatch">River</span> delta`)).Equal("River delta")
}
