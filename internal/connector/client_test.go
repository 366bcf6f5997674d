package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outbound(serviceURL string) *activity.Activity {
	a := activity.NewText("Echo: hello")
	a.ServiceURL = serviceURL
	a.ChannelID = "emulator"
	a.Conversation = &activity.ConversationAccount{ID: "conv|1"}
	a.From = activity.ChannelAccount{ID: "bot"}
	a.Recipient = activity.ChannelAccount{ID: "user"}
	return a
}

func TestClient_ReplyToActivity(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody activity.Activity

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"res-1"}`))
	}))
	defer srv.Close()

	a := outbound(srv.URL + "/")
	a.ReplyToID = "act-9"

	rr, err := New(srv.Client()).Send(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, "res-1", rr.ID)
	assert.Equal(t, "/v3/conversations/conv%7C1/activities/act-9", gotPath)
	assert.Contains(t, gotContentType, "application/json")
	assert.Equal(t, "Echo: hello", gotBody.Text)
}

func TestClient_SendToConversation_EmptyBody(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	rr, err := New(srv.Client()).Send(context.Background(), outbound(srv.URL))

	require.NoError(t, err)
	assert.Empty(t, rr.ID)
	assert.Equal(t, "/v3/conversations/conv|1/activities", gotPath)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.Client()).Send(context.Background(), outbound(srv.URL))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "bad token")
}

func TestClient_MissingAddress(t *testing.T) {
	c := New(nil)

	a := outbound("")
	_, err := c.Send(context.Background(), a)
	assert.ErrorIs(t, err, ErrNoServiceURL)

	a = outbound("http://localhost")
	a.Conversation = nil
	_, err = c.Send(context.Background(), a)
	assert.ErrorIs(t, err, ErrNoConversation)
}

func TestCredentials(t *testing.T) {
	assert.True(t, Credentials{}.Empty())
	assert.True(t, Credentials{AppID: "id"}.Empty())
	assert.False(t, Credentials{AppID: "id", AppPassword: "pw"}.Empty())

	assert.Equal(t, "https://login.microsoftonline.com/botframework.com/oauth2/v2.0/token", Credentials{}.TokenURL())
	assert.Equal(t, "https://login.microsoftonline.com/tenant-1/oauth2/v2.0/token", Credentials{TenantID: "tenant-1"}.TokenURL())
}

func TestClient_LogsOutboundBodyAtDebug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := New(srv.Client())
	c.logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := c.Send(context.Background(), outbound(srv.URL))
	require.NoError(t, err)

	var record struct {
		Msg         string `json:"msg"`
		RequestLine string `json:"request_line"`
		Body        string `json:"body"`
	}
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &record))
	assert.Equal(t, "Outbound request", record.Msg)
	assert.Equal(t, "POST "+srv.URL+"/v3/conversations/conv%7C1/activities", record.RequestLine)
	assert.Contains(t, record.Body, "\n    \"text\": \"Echo: hello\"")
}

func TestClient_SkipsBodyLogAboveDebug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := New(srv.Client())
	c.logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := c.Send(context.Background(), outbound(srv.URL))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Outbound request")
}
