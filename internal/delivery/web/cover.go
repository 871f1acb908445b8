package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/user/book-classifier/pkg/metrics"
)

const (
	maxCoverBytes     = 5 << 20
	maxCoverRedirects = 5
)

// coverProxy serves thumbnails from allow-listed hosts and the placeholder otherwise.
type coverProxy struct {
	client      *http.Client
	hosts       []string
	placeholder []byte
	logger      *zap.Logger
}

func newCoverProxy(client *http.Client, hosts []string, logger *zap.Logger) *coverProxy {
	placeholder, _ := assets.ReadFile("static/no-cover.svg")
	c := &coverProxy{hosts: hosts, placeholder: placeholder, logger: logger}

	// Every redirect hop must pass the same checks as the first URL.
	cl := *client
	cl.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxCoverRedirects {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		return c.check(req.URL)
	}
	c.client = &cl
	return c
}

func (c *coverProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	if err := c.copyCover(w, r, src); err != nil {
		c.logger.Debug("serving placeholder cover", zap.String("src", src), zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("cover").Inc()
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(c.placeholder)
	}
}

// copyCover writes nothing to w unless the upstream image is usable.
func (c *coverProxy) copyCover(w http.ResponseWriter, r *http.Request, src string) error {
	u, err := url.Parse(src)
	if err != nil {
		return err
	}
	if err := c.check(u); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received status code %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("unexpected content type %q", contentType)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, err = io.Copy(w, io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		c.logger.Warn("cover copy interrupted", zap.String("src", src), zap.Error(err))
	}
	return nil
}

func (c *coverProxy) check(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if !c.allowed(u.Hostname()) {
		return fmt.Errorf("host %q is not allowed", u.Hostname())
	}
	return nil
}

// allowed matches a configured host or any subdomain of it.
func (c *coverProxy) allowed(host string) bool {
	host = strings.ToLower(host)
	for _, h := range c.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
