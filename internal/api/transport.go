package api

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/duskfall/mstro/internal/notify"
)

// Authority is the session-side contract the auth transport depends on.
//
// Implemented by session.Manager; defined here so the transport chain does
// not import the session package.
type Authority interface {
	// AccessToken returns the cached bearer token, if any.
	AccessToken() (string, bool)

	// Revalidate re-checks the token against the backend and returns the
	// refreshed token. Concurrent callers share a single in-flight validation.
	Revalidate(ctx context.Context) (string, error)

	// ForceLogout synchronously clears local credentials.
	ForceLogout()
}

// authTransport attaches credentials and handles 401/403 responses.
type authTransport struct {
	next      http.RoundTripper
	authority func() Authority
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authority := t.authority()
	if authority == nil || IsPublic(req.URL.Path) {
		return t.next.RoundTrip(req)
	}

	if token, ok := authority.AccessToken(); ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return t.recover(req, resp, authority)
	case http.StatusForbidden:
		// No retry on 403: the token is valid but the action is not allowed.
		authority.ForceLogout()
		return resp, nil
	default:
		return resp, nil
	}
}

// recover runs the single-flight revalidation and retries the request once.
func (t *authTransport) recover(req *http.Request, resp *http.Response, authority Authority) (*http.Response, error) {
	token, err := authority.Revalidate(req.Context())
	if err != nil {
		authority.ForceLogout()
		return resp, nil
	}

	drain(resp)

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)

	return t.next.RoundTrip(retry)
}

// notifyTransport surfaces non-auth HTTP failures to the notification sink.
type notifyTransport struct {
	next     http.RoundTripper
	notifier notify.Notifier
}

func (t *notifyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		// Transport-level failure: the fixed "status 0" sentence.
		t.push(StatusMessage(0))
		return nil, err
	}

	// 401/403 belong to the auth stage exclusively.
	if resp.StatusCode < 400 || resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return resp, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		body = nil
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.push(Extract(resp.StatusCode, body))
	return resp, nil
}

func (t *notifyTransport) push(msg string) {
	if t.notifier == nil {
		return
	}
	t.notifier.Push(notify.New(notify.LevelError, msg))
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
