package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"confide/internal/domain"
)

// HTTP talks JSON to the relay server.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a relay client for the given base URL.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: base, HTTP: client}
}

// RegisterAccount publishes a new account profile and public key.
func (c *HTTP) RegisterAccount(ctx context.Context, profile domain.AccountProfile) error {
	return c.post(ctx, "/register", profile, nil)
}

// UpdatePublicKey replaces the published public key for user. Old envelopes
// stay encrypted for the previous key and become unreadable; that is the
// documented cost of key rotation.
func (c *HTTP) UpdatePublicKey(
	ctx context.Context,
	user domain.UserID,
	pub domain.PublicKey,
) error {
	return c.post(ctx, "/key/"+url.PathEscape(user.String()), struct {
		PublicKey domain.PublicKey `json:"public_key"`
	}{PublicKey: pub}, nil)
}

// FetchProfile resolves a user id to its current directory profile.
func (c *HTTP) FetchProfile(
	ctx context.Context,
	user domain.UserID,
) (domain.AccountProfile, error) {
	var out domain.AccountProfile
	if err := c.getJSON(ctx, "/key/"+url.PathEscape(user.String()), &out); err != nil {
		return domain.AccountProfile{}, err
	}
	return out, nil
}

// SendEnvelope posts one encrypted envelope for delivery.
func (c *HTTP) SendEnvelope(ctx context.Context, envelope domain.Envelope) error {
	return c.post(ctx, "/msg/"+url.PathEscape(envelope.To.String()), envelope, nil)
}

// FetchEnvelopes returns up to limit queued envelopes for user, oldest first.
func (c *HTTP) FetchEnvelopes(
	ctx context.Context,
	user domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	path := "/msg/" + url.PathEscape(user.String())
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var envs []domain.Envelope
	return envs, c.getJSON(ctx, path, &envs)
}

// FetchSentEnvelopes returns user's own sent copies for the conversation
// with peer, for re-sync after a reinstall that kept the key material.
func (c *HTTP) FetchSentEnvelopes(
	ctx context.Context,
	user domain.UserID,
	peer domain.UserID,
	limit int,
) ([]domain.Envelope, error) {
	path := "/sent/" + url.PathEscape(user.String()) + "/" + url.PathEscape(peer.String())
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var envs []domain.Envelope
	return envs, c.getJSON(ctx, path, &envs)
}

// AckEnvelopes drops the first count queued envelopes for user.
func (c *HTTP) AckEnvelopes(ctx context.Context, user domain.UserID, count int) error {
	return c.post(ctx, "/msg/"+url.PathEscape(user.String())+"/ack", struct {
		Count int `json:"count"`
	}{Count: count}, nil)
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.RelayClient = (*HTTP)(nil)
