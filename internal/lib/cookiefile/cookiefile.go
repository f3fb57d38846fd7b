// Package cookiefile is an http.CookieJar that keeps the cookies of one
// origin in a JSON file, so a session survives between CLI invocations.
package cookiefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Jar struct {
	mu     sync.Mutex
	path   string
	origin *url.URL
	jar    *cookiejar.Jar
	err    error
}

// Open loads the jar stored at path for origin. A missing file yields an empty jar.
func Open(path string, origin *url.URL) (*Jar, error) {
	const op = "cookiefile.Open"

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	j := &Jar{path: path, origin: origin, jar: inner}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", op, path, err)
	}

	var stored []storedCookie
	if err = json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%s: parsing %s: %w", op, path, err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	inner.SetCookies(origin, cookies)

	return j, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	j.err = j.save()
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.jar.Cookies(u)
}

// Err returns the error of the last write triggered by SetCookies.
func (j *Jar) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.err
}

// Clear drops every cookie and removes the file.
func (j *Jar) Clear() error {
	const op = "cookiefile.Clear"

	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	j.jar = inner

	if err = os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: removing %s: %w", op, j.path, err)
	}

	return nil
}

func (j *Jar) save() error {
	const op = "cookiefile.save"

	cookies := j.jar.Cookies(j.origin)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(j.path)
	if err = os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("%s: creating %s: %w", op, directory, err)
	}

	if err = os.WriteFile(j.path, data, 0o600); err != nil {
		return fmt.Errorf("%s: writing %s: %w", op, j.path, err)
	}

	return nil
}
