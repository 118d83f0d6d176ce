package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"weekly-review/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
}

func TestChatBlocking(t *testing.T) {
	srv := completionServer(t, "完整报告")
	defer srv.Close()

	c := NewLLMClient(config.LLMConfig{BaseURL: srv.URL, Model: "qwen-plus"})
	out, err := c.Chat(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "完整报告", out)
}

func TestChatFailoverToBackup(t *testing.T) {
	bad := failingServer(t)
	defer bad.Close()
	good := completionServer(t, "来自备用")
	defer good.Close()

	c := NewLLMClient(config.LLMConfig{BaseURL: bad.URL, BackupURL: good.URL})
	out, err := c.Chat(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "来自备用", out)
}

func TestChatBothEndpointsFail(t *testing.T) {
	bad1 := failingServer(t)
	defer bad1.Close()
	bad2 := failingServer(t)
	defer bad2.Close()

	c := NewLLMClient(config.LLMConfig{BaseURL: bad1.URL, BackupURL: bad2.URL})
	_, err := c.Chat(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrLLMRequest)
}

func TestFailoverIsPerRequest(t *testing.T) {
	calls := 0
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "primary ok"}}},
		})
	}))
	defer primary.Close()
	backup := completionServer(t, "backup ok")
	defer backup.Close()

	c := NewLLMClient(config.LLMConfig{BaseURL: primary.URL, BackupURL: backup.URL})

	out, err := c.Chat(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "backup ok", out)

	// The next request starts at the primary again, no sticky selector.
	out, err = c.Chat(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "primary ok", out)
}

func TestStreamTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, tok := range []string{"本周", "复盘", "完成"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", tok)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewLLMClient(config.LLMConfig{BaseURL: srv.URL})
	var got []string
	full, err := c.Stream(context.Background(), "sys", "user", func(tok string) {
		got = append(got, tok)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"本周", "复盘", "完成"}, got)
	assert.Equal(t, "本周复盘完成", full)
}

func TestStreamCancelledContextDoesNotRetryBackup(t *testing.T) {
	backupCalled := false
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupCalled = true
	}))
	defer backup.Close()
	primary := failingServer(t)
	defer primary.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewLLMClient(config.LLMConfig{BaseURL: primary.URL, BackupURL: backup.URL})
	_, err := c.Chat(ctx, "s", "u")
	assert.ErrorIs(t, err, ErrLLMRequest)
	assert.False(t, backupCalled)
}
