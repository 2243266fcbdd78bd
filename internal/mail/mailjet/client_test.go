package mailjet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
)

func testMessage() mail.Message {
	return mail.Message{
		FromEmail: "noreply@example.com",
		FromName:  "Legal Team",
		ToEmail:   "jane@example.com",
		ToName:    "Jane Doe",
		Subject:   "Thank you for your application",
		TextBody:  "text body",
		HTMLBody:  "<p>html body</p>",
	}
}

func TestSendSuccess(t *testing.T) {
	var captured sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3.1/send", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api-key", user)
		assert.Equal(t, "secret-key", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("api-key", "secret-key", srv.URL)
	ok, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, captured.Messages, 1)
	msg := captured.Messages[0]
	assert.Equal(t, "noreply@example.com", msg.From.Email)
	assert.Equal(t, "Legal Team", msg.From.Name)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "jane@example.com", msg.To[0].Email)
	assert.Equal(t, "Thank you for your application", msg.Subject)
	assert.Equal(t, "text body", msg.TextPart)
	assert.Equal(t, "<p>html body</p>", msg.HTMLPart)
}

func TestSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorMessage":"bad credentials"}`))
	}))
	defer srv.Close()

	client := NewClient("api-key", "wrong", srv.URL)
	ok, err := client.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestSendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient("api-key", "secret-key", srv.URL)
	ok, err := client.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.False(t, ok)
}
