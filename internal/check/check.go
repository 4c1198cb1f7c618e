package check

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Result is the outcome of requesting one route
type Result struct {
	Path        string
	Status      int
	Bytes       int
	ContentType string
	Title       string
	Err         error
}

// OK reports whether the route answered 200 with a body
func (r Result) OK() bool {
	return r.Status == http.StatusOK && r.Bytes > 0
}

// Run requests every path through h in-process and records what came back.
// For HTML pages the document title is pulled out as well.
func Run(ctx context.Context, h http.Handler, paths []string) []Result {
	results := make([]Result, 0, len(paths))

	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil).WithContext(ctx)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		res := Result{
			Path:        p,
			Status:      w.Code,
			Bytes:       w.Body.Len(),
			ContentType: w.Header().Get("Content-Type"),
		}

		if res.OK() && strings.HasPrefix(res.ContentType, "text/html") {
			res.Title, res.Err = pageTitle(w.Body.Bytes(), p)
		}
		results = append(results, res)
	}

	return results
}

func pageTitle(body []byte, path string) (string, error) {
	pageURL, err := url.Parse("http://localhost" + path)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("extract title: %w", err)
	}
	return article.Title, nil
}

// Failed reports whether any route did not return 200 with a body.
// Title extraction errors are informational only.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return true
		}
	}
	return false
}
