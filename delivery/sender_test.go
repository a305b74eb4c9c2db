package delivery_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xraph/datapipeline/delivery"
)

func newPost(url string, body []byte) delivery.Request {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("x-hmac-algorithm", "sha256")
	return delivery.Request{
		Kind:   "account",
		Method: http.MethodPost,
		URL:    url + "/events/account",
		Path:   "/events/account",
		Header: h,
		Body:   body,
	}
}

func TestSenderHappyPath(t *testing.T) {
	var receivedHeaders http.Header
	var receivedBody []byte
	var receivedMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeaders = r.Header
		receivedMethod = r.Method
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	sender := delivery.NewSender(nil, 5*time.Second)
	body := []byte(`{"user_id":"u1"}`)

	a := sender.Send(context.Background(), newPost(srv.URL, body), 5*time.Second)

	if a.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", a.StatusCode)
	}
	if a.Err != nil {
		t.Fatalf("unexpected error: %v", a.Err)
	}
	if string(a.Body) != `{"ok":true}` {
		t.Fatalf("unexpected response: %s", a.Body)
	}
	if receivedMethod != http.MethodPost {
		t.Fatalf("method: got %s", receivedMethod)
	}
	if string(receivedBody) != string(body) {
		t.Fatalf("body: got %q, want %q", receivedBody, body)
	}
	if receivedHeaders.Get("Content-Type") != "application/json" {
		t.Fatal("missing Content-Type")
	}
	if receivedHeaders.Get("x-hmac-algorithm") != "sha256" {
		t.Fatal("missing x-hmac-algorithm")
	}
}

func TestSenderNoBody(t *testing.T) {
	var contentLength int64 = -2
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := delivery.NewSender(nil, 5*time.Second)
	a := sender.Send(context.Background(), delivery.Request{
		Method: http.MethodGet,
		URL:    srv.URL + "/datapipeline/health",
	}, 5*time.Second)

	if a.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", a.StatusCode)
	}
	if contentLength != 0 {
		t.Fatalf("expected empty body, got content length %d", contentLength)
	}
}

func TestSenderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := delivery.NewSender(nil, 5*time.Second)
	a := sender.Send(context.Background(), newPost(srv.URL, []byte(`{}`)), 50*time.Millisecond)

	if a.StatusCode != 0 {
		t.Fatalf("expected status 0 on timeout, got %d", a.StatusCode)
	}
	if a.Err == nil {
		t.Fatal("expected error on timeout")
	}
	if a.Latency <= 0 {
		t.Fatal("expected positive latency")
	}
}

func TestSenderConnectionRefused(t *testing.T) {
	sender := delivery.NewSender(nil, 5*time.Second)
	a := sender.Send(context.Background(), newPost("http://127.0.0.1:1", []byte(`{}`)), 5*time.Second)

	if a.StatusCode != 0 {
		t.Fatalf("expected status 0 on connection refused, got %d", a.StatusCode)
	}
	if a.Err == nil {
		t.Fatal("expected error on connection refused")
	}
}

func TestSenderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	sender := delivery.NewSender(nil, 5*time.Second)
	a := sender.Send(context.Background(), newPost(srv.URL, []byte(`{}`)), 5*time.Second)

	if a.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", a.StatusCode)
	}
	if string(a.Body) != "internal error" {
		t.Fatalf("unexpected response: %s", a.Body)
	}
}
