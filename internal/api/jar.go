package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	cookiejar "github.com/juju/persistent-cookiejar"

	"github.com/existflow/irontodo/internal/logger"
)

// CookieStore persists the API's cookies between runs. The refresh-token
// exchange relies on a long-lived cookie set at login, the same way a
// browser keeps it across reloads.
type CookieStore interface {
	LoadCookies(ctx context.Context) ([]*http.Cookie, error)
	SaveCookies(ctx context.Context, cookies []*http.Cookie) error
}

// persistentJar keeps cookies in a persistent-cookiejar held in memory and
// writes every change through to the CookieStore
type persistentJar struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	store CookieStore
}

func newPersistentJar(base *url.URL, store CookieStore) (*persistentJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{NoPersist: true})
	if err != nil {
		return nil, err
	}
	j := &persistentJar{jar: jar, store: store}
	if store == nil {
		return j, nil
	}

	stored, err := store.LoadCookies(context.Background())
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 {
		jar.SetCookies(base, hostOnly(base, stored))
		logger.Debug("Restored cookies", logger.F("count", len(stored)))
	}
	return j, nil
}

// hostOnly drops a Domain attribute that just names the API host. The jar
// reports host-only cookies with their host as Domain, and a Domain attribute
// is refused outright when the host is an IP address.
func hostOnly(base *url.URL, cookies []*http.Cookie) []*http.Cookie {
	host := base.Hostname()
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		cp := *c
		if strings.TrimPrefix(cp.Domain, ".") == host {
			cp.Domain = ""
		}
		out = append(out, &cp)
	}
	return out
}

// SetCookies implements http.CookieJar. The store is written under the lock
// so saves land in the order the responses were handled.
func (j *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if j.store == nil {
		return
	}
	if err := j.store.SaveCookies(context.Background(), j.jar.AllCookies()); err != nil {
		logger.Warn("Failed to persist cookies", logger.Err(err))
	}
}

// Cookies implements http.CookieJar
func (j *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}
