package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const serviceResponse = `{
	"characters": 120,
	"characters_no_spaces": 100,
	"words": 20,
	"unique_words_count": 15,
	"sentences": 3,
	"water_percentage": 0.1,
	"unique_words": [
		{"word": "кот", "count": 3, "frequency": 0.15},
		{"word": "арбуз", "count": 1, "frequency": 0.05},
		{"word": "ёж", "count": 2, "frequency": 0.1}
	],
	"stopwords": [{"word": "и", "count": 4, "frequency": 0.2}]
}`

const pageHTML = `<!DOCTYPE html>
<html>
<head><title>Кот и пёс</title></head>
<body>
<article>
<h1>Кот и пёс</h1>
<p>Жили-были кот и пёс. Кот любил спать на печи, а пёс охранял двор от незваных гостей и громко лаял.</p>
<p>Однажды зимой они вместе отправились в лес за дровами и встретили там старого ежа, который рассказал им длинную историю.</p>
<p>С тех пор кот и пёс каждый вечер слушали истории ежа и больше никогда не ссорились друг с другом.</p>
</article>
</body>
</html>`

// fakeService records what the CLI sends to the analysis endpoints
type fakeService struct {
	mu        sync.Mutex
	texts     []string
	filenames []string
	contents  []string
	requestID []string
	status    int
	body      string
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	svc := &fakeService{status: http.StatusOK, body: serviceResponse}

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad /analyze body: %v", err)
		}
		svc.mu.Lock()
		svc.texts = append(svc.texts, req.Text)
		svc.requestID = append(svc.requestID, r.Header.Get("X-Request-ID"))
		svc.mu.Unlock()
		svc.respond(w)
	})
	mux.HandleFunc("/analyze_file", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing multipart file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		svc.mu.Lock()
		svc.filenames = append(svc.filenames, header.Filename)
		svc.contents = append(svc.contents, string(data))
		svc.mu.Unlock()
		svc.respond(w)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, pageHTML)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return svc, server
}

func (s *fakeService) respond(w http.ResponseWriter) {
	s.mu.Lock()
	status, body := s.status, s.body
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// executeCommand runs the root command in an isolated home and working
// directory so no real configuration file is picked up
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := NewRootCommand("1.2.3", "abc123", "2025-01-01")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "textlens 1.2.3 (abc123) built on 2025-01-01") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}
