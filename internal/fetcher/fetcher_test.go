package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/maltedev/compuzone-search/internal/browser"
	"github.com/maltedev/compuzone-search/internal/site"
)

const fragment = `<ul><li class="li-obj"><div class="prd_info_name prdTxt">[ASUS] 지포스 RTX 5080 그래픽카드</div></li></ul>`

func eucKR(t *testing.T, s string) []byte {
	t.Helper()
	encoded, err := korean.EUCKR.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(encoded)
}

func testProfile(searchURL string) *site.Profile {
	profile := site.Compuzone()
	profile.SearchURL = searchURL
	return profile
}

func TestHTTPFetcherFetch(t *testing.T) {
	body := eucKR(t, fragment)

	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write(body)
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{Profile: testProfile(server.URL), PageSize: 100})

	html, err := f.Fetch(context.Background(), "그래픽카드", nil)
	require.NoError(t, err)
	assert.Equal(t, fragment, html)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "XMLHttpRequest", got.Header.Get("X-Requested-With"))
	assert.Equal(t, "*/*", got.Header.Get("Accept"))
	assert.Equal(t, site.DefaultRefererURL+"?SearchProductKey=%EA%B7%B8%EB%9E%98%ED%94%BD%EC%B9%B4%EB%93%9C", got.Header.Get("Referer"))
	assert.Equal(t, site.DefaultUserAgent, got.Header.Get("User-Agent"))

	q := got.URL.Query()
	assert.Equal(t, "그래픽카드", q.Get("SearchText"))
	assert.Equal(t, "list", q.Get("actype"))
	assert.Equal(t, "small", q.Get("SearchType"))
	assert.Equal(t, "sale_order", q.Get("PreOrder"))
	assert.Equal(t, "100", q.Get("PageCount"))
	assert.Equal(t, "0", q.Get("StartNum"))
	assert.Equal(t, "1", q.Get("PageNum"))
	assert.Contains(t, q, "MakerNo")
	assert.Empty(t, q.Get("MakerNo"))
}

func TestHTTPFetcherOverridesEnvelope(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte("<ul></ul>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{Profile: testProfile(server.URL)})

	_, err := f.Fetch(context.Background(), "SSD", url.Values{"PageCount": {"50"}, "MakerNo": {"3"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"50"}, query["PageCount"])
	assert.Equal(t, []string{"3"}, query["MakerNo"])
}

func TestHTTPFetcherErrors(t *testing.T) {
	t.Run("Server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		f := NewHTTPFetcher(Options{Profile: testProfile(server.URL)})

		html, err := f.Fetch(context.Background(), "RTX", nil)
		assert.Empty(t, html)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFetch))

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
		assert.Equal(t, "RTX", fetchErr.Query)
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte("<ul></ul>"))
		}))
		defer server.Close()

		f := NewHTTPFetcher(Options{Profile: testProfile(server.URL), Timeout: 50 * time.Millisecond})

		_, err := f.Fetch(context.Background(), "RTX", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("Context deadline cuts the request short", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
			w.Write([]byte("<ul></ul>"))
		}))
		defer server.Close()
		defer close(release)

		f := NewHTTPFetcher(Options{Profile: testProfile(server.URL)})

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		html, err := f.Fetch(ctx, "RTX", nil)

		assert.Less(t, time.Since(start), time.Second)
		assert.Empty(t, html)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := NewHTTPFetcher(Options{Profile: testProfile("http://127.0.0.1:1")})

		_, err := f.Fetch(ctx, "RTX", nil)
		assert.ErrorIs(t, err, ErrFetch)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type stubLoader struct {
	resp    *browser.Response
	err     error
	url     string
	headers map[string]string
}

func (s *stubLoader) Get(_ context.Context, url string, headers map[string]string) (*browser.Response, error) {
	s.url = url
	s.headers = headers
	return s.resp, s.err
}

func TestBrowserFetcherFetch(t *testing.T) {
	loader := &stubLoader{resp: &browser.Response{Status: http.StatusOK, Body: eucKR(t, fragment)}}
	f := NewBrowserFetcher(loader, Options{Profile: testProfile("https://example.test/search_list.php")})

	html, err := f.Fetch(context.Background(), "RTX 5080", nil)
	require.NoError(t, err)
	assert.Equal(t, fragment, html)

	u, err := url.Parse(loader.url)
	require.NoError(t, err)
	assert.Equal(t, "example.test", u.Host)
	assert.Equal(t, "RTX 5080", u.Query().Get("SearchText"))
	assert.Equal(t, "XMLHttpRequest", loader.headers["X-Requested-With"])
	assert.Contains(t, loader.headers["Referer"], "SearchProductKey=RTX+5080")
}

func TestBrowserFetcherErrors(t *testing.T) {
	tests := []struct {
		name   string
		loader *stubLoader
		status int
	}{
		{"Navigation failure", &stubLoader{err: errors.New("net::ERR_CONNECTION_REFUSED")}, 0},
		{"Forbidden", &stubLoader{resp: &browser.Response{Status: http.StatusForbidden}}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBrowserFetcher(tt.loader, Options{})

			_, err := f.Fetch(context.Background(), "RTX", nil)
			require.Error(t, err)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, tt.status, fetchErr.StatusCode)
			assert.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	text, err := decodeBody(eucKR(t, "메모리 16GB"), "euc-kr")
	require.NoError(t, err)
	assert.Equal(t, "메모리 16GB", text)

	text, err = decodeBody([]byte("plain"), "")
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	_, err = decodeBody([]byte("x"), "no-such-charset")
	assert.Error(t, err)
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Query: "RTX", StatusCode: 500, Err: errors.New("Internal Server Error")}
	assert.Equal(t, `fetch "RTX": status 500: Internal Server Error`, err.Error())

	err = &FetchError{Query: "RTX", Err: context.DeadlineExceeded}
	assert.Equal(t, `fetch "RTX": context deadline exceeded`, err.Error())
}
