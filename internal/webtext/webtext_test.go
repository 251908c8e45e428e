package webtext

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Кот и пёс</title></head>
<body>
<nav><a href="/">Главная</a></nav>
<article>
<h1>Кот и пёс</h1>
<p>Жили-были кот и пёс. Кот любил спать на печи, а пёс охранял двор от незваных гостей и громко лаял.</p>
<p>Однажды зимой они вместе отправились в лес за дровами и встретили там старого ежа, который рассказал им длинную историю.</p>
<p>С тех пор кот и пёс каждый вечер слушали истории ежа и больше никогда не ссорились друг с другом.</p>
</article>
</body>
</html>`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, articleHTML)
	}))
	defer server.Close()

	article, err := New(Config{}, nil).Fetch(context.Background(), server.URL+"/story")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(article.Text, "старого ежа") {
		t.Errorf("article text missing body: %q", article.Text)
	}
	if article.URL != server.URL+"/story" {
		t.Errorf("unexpected URL %q", article.URL)
	}
}

func TestFetchRejectsLargePages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, articleHTML)
	}))
	defer server.Close()

	_, err := New(Config{MaxBodyBytes: 64}, nil).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := New(Config{}, nil).Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected an error for 404")
	}
}

func TestFetchInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/a", "not a url", "http://"} {
		if _, err := New(Config{}, nil).Fetch(context.Background(), raw); err == nil {
			t.Errorf("Fetch(%q) should fail", raw)
		}
	}
}
