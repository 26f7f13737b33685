package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailerLink(t *testing.T) {
	m := NewLogMailer("http://localhost:3000/api/auth/verify/", nil)
	assert.Equal(t, "http://localhost:3000/api/auth/verify?token=a%2Bb", m.Link("a+b"))
	assert.NoError(t, m.SendVerification(context.Background(), "x@gmail.com", "X", "tok"))
}

func TestWebhookMailerPostsMessage(t *testing.T) {
	var got webhookMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	m := NewWebhookMailer(srv.URL+"/send", "secret", "http://app/verify", nil)
	require.NoError(t, m.SendVerification(context.Background(), "nimal@gmail.com", "Nimal", "tok123"))

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "nimal@gmail.com", got.To)
	assert.Equal(t, "Nimal", got.Name)
	assert.Equal(t, verificationSubject, got.Subject)
	assert.Equal(t, "http://app/verify?token=tok123", got.Link)
}

func TestWebhookMailerRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewWebhookMailer(srv.URL, "", "http://app/verify", nil)
	err := m.SendVerification(context.Background(), "a@gmail.com", "A", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
