package relayserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"confide/internal/domain"
	"confide/internal/relayserver"
)

func newTestServer(t *testing.T) (*httptest.Server, *relayserver.MemoryStorage) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	storage := relayserver.NewMemoryStorage()
	srv := httptest.NewServer(relayserver.New(storage, log).Router())
	t.Cleanup(srv.Close)
	return srv, storage
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func registerUser(t *testing.T, base string, user domain.UserID, key byte) {
	t.Helper()
	resp := postJSON(t, base+"/register", domain.AccountProfile{
		UserID:    user,
		PublicKey: domain.PublicKey{key},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLookup(t *testing.T) {
	srv, _ := newTestServer(t)

	registerUser(t, srv.URL, "alice", 1)

	resp, err := http.Get(srv.URL + "/key/alice")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile domain.AccountProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	require.Equal(t, domain.UserID("alice"), profile.UserID)
	require.Equal(t, domain.PublicKey{1}, profile.PublicKey)

	resp, err = http.Get(srv.URL + "/key/nobody")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegister_RejectsIncompleteProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/register", domain.AccountProfile{UserID: "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKeyRotation(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv.URL, "alice", 1)

	resp := postJSON(t, srv.URL+"/key/alice", map[string]domain.PublicKey{
		"public_key": {2},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get, err := http.Get(srv.URL + "/key/alice")
	require.NoError(t, err)
	defer get.Body.Close()
	var profile domain.AccountProfile
	require.NoError(t, json.NewDecoder(get.Body).Decode(&profile))
	require.Equal(t, domain.PublicKey{2}, profile.PublicKey)

	// Rotating an unregistered user is a 404, not an implicit registration.
	resp = postJSON(t, srv.URL+"/key/nobody", map[string]domain.PublicKey{
		"public_key": {3},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func envelope(from, to domain.UserID) domain.Envelope {
	return domain.Envelope{
		From: from,
		To:   to,
		EncryptedEnvelope: domain.EncryptedEnvelope{
			Ciphertext: "Y2lwaGVydGV4dA==",
			Nonce:      "bm9uY2Vub25jZW5vbmNlbm9uY2U=",
		},
	}
}

func TestSendValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv.URL, "alice", 1)
	registerUser(t, srv.URL, "bob", 2)

	// Self-send is rejected.
	resp := postJSON(t, srv.URL+"/msg/alice", envelope("alice", "alice"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown receiver.
	resp = postJSON(t, srv.URL+"/msg/nobody", envelope("alice", "nobody"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing ciphertext.
	bad := envelope("alice", "bob")
	bad.Ciphertext = ""
	resp = postJSON(t, srv.URL+"/msg/bob", bad)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOfflineQueueFetchAck(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv.URL, "alice", 1)
	registerUser(t, srv.URL, "bob", 2)

	resp := postJSON(t, srv.URL+"/msg/bob", envelope("alice", "bob"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get, err := http.Get(srv.URL + "/msg/bob")
	require.NoError(t, err)
	defer get.Body.Close()
	var envs []domain.Envelope
	require.NoError(t, json.NewDecoder(get.Body).Decode(&envs))
	require.Len(t, envs, 1)
	require.NotEmpty(t, envs[0].ID, "relay must assign an envelope id")
	require.NotZero(t, envs[0].Timestamp)

	// Unacked messages are served again.
	get2, err := http.Get(srv.URL + "/msg/bob")
	require.NoError(t, err)
	defer get2.Body.Close()
	var again []domain.Envelope
	require.NoError(t, json.NewDecoder(get2.Body).Decode(&again))
	require.Len(t, again, 1)

	resp = postJSON(t, srv.URL+"/msg/bob/ack", map[string]int{"count": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get3, err := http.Get(srv.URL + "/msg/bob")
	require.NoError(t, err)
	defer get3.Body.Close()
	var empty []domain.Envelope
	require.NoError(t, json.NewDecoder(get3.Body).Decode(&empty))
	require.Empty(t, empty)
}

func TestSentLogServesResync(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv.URL, "alice", 1)
	registerUser(t, srv.URL, "bob", 2)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, srv.URL+"/msg/bob", envelope("alice", "bob"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	get, err := http.Get(srv.URL + "/sent/alice/bob")
	require.NoError(t, err)
	defer get.Body.Close()
	var envs []domain.Envelope
	require.NoError(t, json.NewDecoder(get.Body).Decode(&envs))
	require.Len(t, envs, 3)

	// The receiver acking their inbox must not erase the sender's log.
	resp := postJSON(t, srv.URL+"/msg/bob/ack", map[string]int{"count": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get2, err := http.Get(srv.URL + "/sent/alice/bob")
	require.NoError(t, err)
	defer get2.Body.Close()
	var after []domain.Envelope
	require.NoError(t, json.NewDecoder(get2.Body).Decode(&after))
	require.Len(t, after, 3)
}

func TestLiveDeliveryOverWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv.URL, "alice", 1)
	registerUser(t, srv.URL, "bob", 2)

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/ws?user=bob"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp := postJSON(t, srv.URL+"/msg/bob", envelope("alice", "bob"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env domain.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, domain.UserID("alice"), env.From)
	require.Equal(t, domain.UserID("bob"), env.To)

	// Live-delivered envelopes are not queued for later fetch.
	get, err := http.Get(srv.URL + "/msg/bob")
	require.NoError(t, err)
	defer get.Body.Close()
	var envs []domain.Envelope
	require.NoError(t, json.NewDecoder(get.Body).Decode(&envs))
	require.Empty(t, envs)
}
