package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type TestResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func TestClient_Request_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != MethodGet {
			t.Errorf("Expected GET method, got %s", r.Method)
		}

		w.Header().Set(HeaderContentType, ContentTypeJSON)
		json.NewEncoder(w).Encode(TestResponse{Message: "success", Status: 200})
	}))
	defer server.Close()

	client := New()
	resp, err := client.Request(MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(HeaderContentType) != ContentTypeJSON {
		t.Errorf("Expected response header to be kept, got %v", resp.Header)
	}
	if !strings.Contains(string(resp.Body), `"success"`) {
		t.Errorf("Expected raw body to be kept, got %s", resp.Body)
	}
}

func TestClient_Request_POST_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderContentType) != ContentTypeJSON {
			t.Errorf("Expected Content-Type %s, got %s", ContentTypeJSON, r.Header.Get(HeaderContentType))
		}

		var reqBody TestResponse
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}

		w.WriteHeader(201)
		json.NewEncoder(w).Encode(TestResponse{Message: "received: " + reqBody.Message, Status: 201})
	}))
	defer server.Close()

	client := New()
	resp, err := client.Request(MethodPost, server.URL, TestResponse{Message: "test message"})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	var result TestResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
	if result.Message != "received: test message" {
		t.Errorf("Expected message 'received: test message', got '%s'", result.Message)
	}
}

func TestClient_Request_WithContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Request(MethodGet, server.URL, nil, WithContext(ctx)); err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestClient_Request_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := New(WithTimeout(20 * time.Millisecond))
	if _, err := client.Request(MethodGet, server.URL, nil); err == nil {
		t.Error("Expected client timeout error, got nil")
	}
}

func TestClient_Request_WithHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAuthorization) != "Bearer abc" {
			t.Errorf("Expected bearer header, got '%s'", r.Header.Get(HeaderAuthorization))
		}
	}))
	defer server.Close()

	client := New()
	_, err := client.Request(MethodGet, server.URL, nil, WithHeader(map[string]string{HeaderAuthorization: Bearer("abc")}))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
}

func TestClient_Request_WithQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "250" {
			t.Errorf("Expected limit=250, got '%s'", got)
		}
		if got := r.URL.Query().Get("keep"); got != "1" {
			t.Errorf("Expected existing query to survive, got '%s'", got)
		}
		if r.URL.Path != "/v1/items" {
			t.Errorf("Expected path /v1/items, got %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New()
	_, err := client.Request(MethodGet, server.URL+"/v1/items?keep=1", nil, WithQuery(map[string]string{"limit": "250"}))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
}

func TestClient_Request_Multipart(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"explicit type", "image/png", "image/png"},
		{"default type", "", ContentTypeOctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				file, header, err := r.FormFile("file_name")
				if err != nil {
					t.Errorf("Expected multipart file, got error: %v", err)
					return
				}
				defer file.Close()

				data, _ := io.ReadAll(file)
				if string(data) != "png-bytes" {
					t.Errorf("Unexpected file contents %q", data)
				}
				if header.Filename != `logo "1".png` {
					t.Errorf("Expected filename to round trip, got %s", header.Filename)
				}
				if got := header.Header.Get(HeaderContentType); got != tt.want {
					t.Errorf("Expected part Content-Type %s, got %s", tt.want, got)
				}
			}))
			defer server.Close()

			client := New()
			_, err := client.Request(MethodPost, server.URL, nil, WithMultipart(Part{
				Name:        "file_name",
				Filename:    `logo "1".png`,
				ContentType: tt.contentType,
				Contents:    strings.NewReader("png-bytes"),
			}))
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
		})
	}
}

func TestClient_Request_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		w.Write([]byte(`{"errors":[]}`))
	}))
	defer server.Close()

	client := New()
	resp, err := client.Request(MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("Non-2xx must not be a transport error: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"errors":[]}` {
		t.Errorf("Expected raw error body, got %s", resp.Body)
	}
}

func TestClient_Request_Methods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.Method)
	}))
	defer server.Close()

	client := New()
	for _, method := range []string{MethodGet, MethodPost, MethodPut, MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp, err := client.Request(method, server.URL, map[string]string{"test": "data"})
			if err != nil {
				t.Fatalf("%s request failed: %v", method, err)
			}
			if string(resp.Body) != method {
				t.Errorf("Expected method %s, got %s", method, resp.Body)
			}
		})
	}
}

func TestClient_Request_NilBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get(HeaderContentType); ct != "" {
			t.Errorf("Expected no Content-Type, got %s", ct)
		}
		if data, _ := io.ReadAll(r.Body); len(data) != 0 {
			t.Errorf("Expected empty body, got %q", data)
		}
	}))
	defer server.Close()

	client := New()
	if _, err := client.Request(MethodPost, server.URL+"/v2/locations/L2/transactions/T1/void", nil); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
}

// Bodies must not share memory with pooled buffers: the server rejects
// before reading, so the transport may still hold the body after Do returns.
func TestClient_Request_ConcurrentBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("reject") == "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		io.Copy(w, r.Body)
	}))
	defer server.Close()

	client := New()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			msg := fmt.Sprintf("message-%02d-%s", i, strings.Repeat("x", i*64))
			query := map[string]string{}
			if i%2 == 0 {
				query["reject"] = "1"
			}
			resp, err := client.Request(MethodPost, server.URL, TestResponse{Message: msg, Status: i}, WithQuery(query))
			if err != nil {
				t.Errorf("Request %d failed: %v", i, err)
				return
			}
			if resp.StatusCode != http.StatusOK {
				return
			}

			var got TestResponse
			if err := json.Unmarshal(resp.Body, &got); err != nil {
				t.Errorf("Request %d: invalid echo %q: %v", i, resp.Body, err)
				return
			}
			if got.Message != msg || got.Status != i {
				t.Errorf("Request %d: body was overwritten, got %+v", i, got)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkClient_Request(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TestResponse{Message: "benchmark", Status: 200})
	}))
	defer server.Close()

	client := New()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := client.Request(MethodPost, server.URL, TestResponse{Message: "x"}); err != nil {
				b.Fatalf("Request failed: %v", err)
			}
		}
	})
}
