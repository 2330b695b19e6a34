package memos_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asyncopatedsoul/health-protocol/internal/repository/memos"
)

func TestMemosClient(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/memos", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodPost:
			var m memos.Memo
			json.NewDecoder(r.Body).Decode(&m)
			m.Name = "memos/uid-1"
			json.NewEncoder(w).Encode(m)
		case http.MethodGet:
			if r.URL.Query().Get("filter") == "error" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			resp := memos.ListMemosResponse{Memos: []memos.Memo{{Name: "memos/uid-1", Content: "List item"}}}
			if r.URL.Query().Get("pageToken") == "" {
				resp.NextPageToken = "next"
			}
			json.NewEncoder(w).Encode(resp)
		}
	})

	mux.HandleFunc("/api/v1/memos/uid-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			var req memos.UpdateMemoRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(memos.Memo{
				Name:        "memos/uid-1",
				Content:     req.Content,
				DisplayTime: r.URL.Query().Get("updateMask"),
			})
		case http.MethodGet:
			json.NewEncoder(w).Encode(memos.Memo{Name: "memos/uid-1", Content: "Got memo"})
		}
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := memos.NewClient(ts.URL+"/", "test-token")
	ctx := context.Background()

	t.Run("CreateMemo", func(t *testing.T) {
		res, err := client.CreateMemo(ctx, memos.CreateMemoRequest{Content: "Hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.UIDFromName() != "uid-1" || res.Content != "Hello" {
			t.Errorf("unexpected memo response: %+v", res)
		}
	})

	t.Run("UpdateMemo sends mask as query", func(t *testing.T) {
		res, err := client.UpdateMemo(ctx, "uid-1", memos.UpdateMemoRequest{
			Content:    "Updated",
			UpdateMask: "content,display_time",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Content != "Updated" {
			t.Errorf("unexpected memo content: %s", res.Content)
		}
		if res.DisplayTime != "content,display_time" {
			t.Errorf("mask not forwarded: %q", res.DisplayTime)
		}
	})

	t.Run("GetMemo accepts resource names", func(t *testing.T) {
		for _, id := range []string{"uid-1", "memos/uid-1"} {
			res, err := client.GetMemo(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", id, err)
			}
			if res.Content != "Got memo" {
				t.Errorf("unexpected content: %s", res.Content)
			}
		}
	})

	t.Run("GetMemo not found", func(t *testing.T) {
		_, err := client.GetMemo(ctx, "missing")
		if !errors.Is(err, memos.ErrMemoNotFound) {
			t.Errorf("expected ErrMemoNotFound, got %v", err)
		}
	})

	t.Run("ListMemos", func(t *testing.T) {
		res, err := client.ListMemos(ctx, memos.ListMemosRequest{PageSize: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Memos) != 1 || res.NextPageToken != "next" {
			t.Errorf("unexpected list result: %+v", res)
		}

		if _, err := client.ListMemos(ctx, memos.ListMemosRequest{Filter: "error"}); err == nil {
			t.Errorf("expected error from filter")
		}
	})

	t.Run("Server Down", func(t *testing.T) {
		badClient := memos.NewClient("http://localhost:59999", "token")
		if _, err := badClient.GetMemo(ctx, "uid-1"); err == nil {
			t.Errorf("expected connection refused error")
		}
	})
}
