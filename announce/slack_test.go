package announce

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/logger"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlack struct {
	mu       sync.Mutex
	channel  string
	blocks   string
	lookups  []string
	authFail bool
}

func (f *fakeSlack) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = r.ParseForm()
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth.test":
		if f.authFail {
			_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"user":"release-bot","team":"acme"}`))
	case "/users.lookupByEmail":
		email := r.FormValue("email")
		f.lookups = append(f.lookups, email)
		if email != "alice@example.com" {
			_, _ = w.Write([]byte(`{"ok":false,"error":"users_not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"user":{"id":"U123","name":"alice"}}`))
	case "/chat.postMessage":
		f.channel = r.FormValue("channel")
		f.blocks = r.FormValue("blocks")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestSlackAnnouncer(t *testing.T) {
	fake := &fakeSlack{}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	cfg := config.Config{SlackToken: "xoxb-test", SlackChannel: "#releases"}

	a, err := NewSlackAnnouncer(cfg, logger.NewTestLogger(t), slack.OptionAPIURL(srv.URL+"/"))
	require.NoError(t, err)
	require.NoError(t, a.Announce(context.Background(), Announcement{
		Version:     "1.1.0",
		ReleaseURL:  "https://github.com/acme/widget/releases/tag/untagged-1",
		Repository:  "acme/widget",
		TestRelease: true,
		Users:       []string{"alice@example.com", "bob@example.com", "alice@example.com", ""},
	}))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "#releases", fake.channel)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, fake.lookups)
	assert.Contains(t, fake.blocks, "Draft test release 1.1.0 created")
	assert.Contains(t, fake.blocks, "https://github.com/acme/widget/releases/tag/untagged-1")
	assert.Contains(t, fake.blocks, "@U123|alice")
	assert.Contains(t, fake.blocks, "bob@example.com")
}

func TestSlackAnnouncerAuthFailure(t *testing.T) {
	srv := httptest.NewServer(&fakeSlack{authFail: true})
	defer srv.Close()
	_, err := NewSlackAnnouncer(config.Config{SlackToken: "bad", SlackChannel: "#releases"}, logger.NewTestLogger(t), slack.OptionAPIURL(srv.URL+"/"))
	require.Error(t, err)
}

func TestNewWithoutSlack(t *testing.T) {
	a := New(config.Config{}, logger.NewTestLogger(t))
	assert.IsType(t, Nop{}, a)
	assert.NoError(t, a.Announce(context.Background(), Announcement{Version: "1.0.0"}))
}

type warningRecorder struct {
	logger.Logger
	warnings []string
}

func (w *warningRecorder) Warnf(format string, args ...interface{}) {
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
	w.Logger.Warnf(format, args...)
}

func TestNewWithSlack(t *testing.T) {
	fake := &fakeSlack{}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	log := &warningRecorder{Logger: logger.NewTestLogger(t)}

	a := New(config.Config{SlackToken: "xoxb-test", SlackChannel: "#releases", SlackAPIURL: srv.URL}, log)

	assert.IsType(t, &SlackAnnouncer{}, a)
	require.NoError(t, a.Announce(context.Background(), Announcement{Version: "1.1.0", Repository: "acme/widget"}))
	assert.Empty(t, log.warnings)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "#releases", fake.channel)
}

func TestNewWithFailingSlackAuth(t *testing.T) {
	fake := &fakeSlack{authFail: true}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	log := &warningRecorder{Logger: logger.NewTestLogger(t)}

	a := New(config.Config{SlackToken: "bad", SlackChannel: "#releases", SlackAPIURL: srv.URL}, log)

	assert.IsType(t, Nop{}, a)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "invalid_auth")
	assert.NoError(t, a.Announce(context.Background(), Announcement{Version: "1.1.0"}))
	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Empty(t, fake.channel)
}
