package browser

import (
	"bufio"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/oasis-os/oasis/pkg/backend"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// Scheme identifies the URL scheme a Loader dispatches on.
type Scheme string

const (
	SchemeHTTP   Scheme = "http"
	SchemeHTTPS  Scheme = "https"
	SchemeGemini Scheme = "gemini"
)

// maxSubresources bounds concurrent per-page sub-resource loads (spec
// §9 "golang.org/x/sync errgroup bounds concurrent sub-resource
// loads").
const maxSubresources = 4

// Loader fetches pages over the Network backend trait. Plain TCP
// serves http://; https:// and gemini:// require a TLSProvider, and
// degrade to an error page rather than crashing when one is absent
// (spec §4.6 "Loader").
type Loader struct {
	net   backend.Network
	group singleflight.Group
}

// NewLoader creates a Loader bound to a Network backend.
func NewLoader(net backend.Network) *Loader {
	return &Loader{net: net}
}

// Page is the result of a successful or degraded-error load.
type Page struct {
	URL        string
	StatusCode int
	Body       string
	ReaderMode bool
}

// Load fetches a single URL, dispatching on scheme. Sub-resources (for
// future <img>/<link> expansion) would be fetched through LoadAll, via
// an errgroup bounded to maxSubresources concurrent fetches and
// deduplicated by singleflight so two references to the same URL on
// one page only cost one round trip.
func (l *Loader) Load(rawURL string) (Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errorPage(rawURL, 400, "malformed URL"), nil
	}
	scheme := Scheme(strings.ToLower(u.Scheme))

	v, err, _ := l.group.Do(rawURL, func() (any, error) {
		return l.fetch(u, scheme)
	})
	if err != nil {
		return errorPage(rawURL, 502, err.Error()), nil
	}
	return v.(Page), nil
}

// LoadAll fetches multiple sub-resource URLs concurrently, capped at
// maxSubresources in flight, collecting whichever succeed.
func (l *Loader) LoadAll(urls []string) ([]Page, error) {
	pages := make([]Page, len(urls))
	g := new(errgroup.Group)
	g.SetLimit(maxSubresources)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			p, err := l.Load(u)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pages, err
	}
	return pages, nil
}

func (l *Loader) fetch(u *url.URL, scheme Scheme) (Page, error) {
	if l.net == nil {
		return Page{}, oerrors.New(oerrors.KindUnsupported, "no network backend wired")
	}
	host := u.Host
	switch scheme {
	case SchemeHTTP:
		return l.fetchHTTP(host, u, false)
	case SchemeHTTPS:
		return l.fetchHTTP(host, u, true)
	case SchemeGemini:
		return l.fetchGemini(host, u)
	default:
		return Page{}, oerrors.New(oerrors.KindUnsupported, "unsupported scheme").WithInput(string(scheme))
	}
}

func (l *Loader) dial(host string, useTLS bool, serverName string) (backend.Stream, error) {
	if !strings.Contains(host, ":") {
		if useTLS {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	stream, err := l.net.Connect(host)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.KindNetwork, err, "connect failed")
	}
	if !useTLS {
		return stream, nil
	}
	provider, ok := l.net.TLSProvider()
	if !ok {
		stream.Close()
		return nil, oerrors.New(oerrors.KindUnsupported, "TLS requested but no TLSProvider configured")
	}
	wrapped, err := provider.WrapClient(stream, serverName)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.KindNetwork, err, "TLS handshake failed")
	}
	return wrapped, nil
}

func (l *Loader) fetchHTTP(host string, u *url.URL, useTLS bool) (Page, error) {
	stream, err := l.dial(host, useTLS, u.Hostname())
	if err != nil {
		return errorPage(u.String(), 502, err.Error()), nil
	}
	defer stream.Close()

	path := u.RequestURI()
	if path == "" {
		path = "/"
	}
	req := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", path, u.Hostname())
	if _, err := stream.Write([]byte(req)); err != nil {
		return errorPage(u.String(), 502, err.Error()), nil
	}

	reader := bufio.NewReader(stream)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		return errorPage(u.String(), 502, "no response"), nil
	}
	status := parseStatusCode(statusLine)

	for {
		line, err := reader.ReadString('\n')
		if err != nil || strings.TrimSpace(line) == "" {
			break
		}
	}
	var body strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			body.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return Page{URL: u.String(), StatusCode: status, Body: body.String()}, nil
}

func (l *Loader) fetchGemini(host string, u *url.URL) (Page, error) {
	if !strings.Contains(host, ":") {
		host += ":1965"
	}
	stream, err := l.dial(host, true, u.Hostname())
	if err != nil {
		return errorPage(u.String(), 502, err.Error()), nil
	}
	defer stream.Close()

	if _, err := stream.Write([]byte(u.String() + "\r\n")); err != nil {
		return errorPage(u.String(), 502, err.Error()), nil
	}
	reader := bufio.NewReader(stream)
	header, err := reader.ReadString('\n')
	if err != nil {
		return errorPage(u.String(), 502, "no response"), nil
	}
	status, _ := strconv.Atoi(strings.Fields(header)[0][:1] + "0")

	var body strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			body.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return Page{URL: u.String(), StatusCode: status, Body: body.String()}, nil
}

func parseStatusCode(statusLine string) int {
	fields := strings.Fields(statusLine)
	if len(fields) < 2 {
		return 502
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 502
	}
	return code
}

// errorPage builds a themed, never-blank error page (spec §7
// "Browser shows a themed error page with status code and
// explanation; never blank").
func errorPage(requestedURL string, status int, message string) Page {
	body := fmt.Sprintf(
		"<html><body><h1>%d</h1><p>%s</p><p>%s</p></body></html>",
		status, message, requestedURL,
	)
	return Page{URL: requestedURL, StatusCode: status, Body: body}
}
