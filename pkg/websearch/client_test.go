package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain body text",
			raw:  "<html><body><p>Hello world</p></body></html>",
			want: "Hello world",
		},
		{
			name: "script and style are skipped",
			raw:  "<html><head><style>p{color:red}</style></head><body><script>var x=1;</script><p>visible</p></body></html>",
			want: "visible",
		},
		{
			name: "whitespace collapsed",
			raw:  "<html><body><p>one\n\n  two</p><p>three</p></body></html>",
			want: "one two three",
		},
		{
			name: "empty document",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText(tt.raw); got != tt.want {
				t.Errorf("extractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextBudget(t *testing.T) {
	raw := "<html><body>" + strings.Repeat("word ", 2000) + "</body></html>"
	got := extractText(raw)
	if len(got) != crawlBudget {
		t.Errorf("len = %d, want truncation at %d", len(got), crawlBudget)
	}
}

func TestExtractTextBudgetMultibyte(t *testing.T) {
	raw := "<html><body>" + strings.Repeat("日本語 ", 3000) + "</body></html>"
	got := extractText(raw)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is invalid UTF-8")
	}
	if count := utf8.RuneCountInString(got); count != crawlBudget {
		t.Errorf("rune count = %d, want truncation at %d characters", count, crawlBudget)
	}
}

func TestCrawl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><h1>Title</h1><p>Body text here.</p></body></html>"))
	}))
	defer srv.Close()

	c := NewClient("", "")
	got, err := c.Crawl(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if got != "Title Body text here." {
		t.Errorf("Crawl = %q", got)
	}
}

func TestCrawlEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><script>only scripts</script></body></html>"))
	}))
	defer srv.Close()

	c := NewClient("", "")
	got, err := c.Crawl(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if got != "Unable to extract content from this page." {
		t.Errorf("Crawl = %q, want extraction placeholder", got)
	}
}

func TestCrawlErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("", "")
	if _, err := c.Crawl(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestSearchWithoutAPIKey(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error when API key is not configured")
	}
}
