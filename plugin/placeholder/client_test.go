package placeholder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Leanne Graham","username":"Bret","email":"leanne@april.biz"}]`))
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":11,"userId":1,"title":"t","body":"b"},{"id":12,"userId":1,"title":"t2","body":"b2"}]`))
	})
	mux.HandleFunc("/comments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":101,"postId":11,"name":"n","email":"e@f.g","body":"b"}]`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(ts.URL + "/")
	snapshot, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(snapshot.Users) != 1 || len(snapshot.Posts) != 2 || len(snapshot.Comments) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d users, %d posts, %d comments",
			len(snapshot.Users), len(snapshot.Posts), len(snapshot.Comments))
	}
	if snapshot.Users[0].Name != "Leanne Graham" {
		t.Errorf("expected decoded user name, got %q", snapshot.Users[0].Name)
	}
	if snapshot.Posts[1].UserID != 1 {
		t.Errorf("expected decoded post userId, got %d", snapshot.Posts[1].UserID)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error from failing source")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", httpErr.StatusCode)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(ts.URL)
	if _, err := client.Fetch(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
