// Package culler probes the catalog for dead URLs so stale entries can be
// pruned from the source list. Every link contributes its main URL and,
// when present, its project link as separate probe targets.
package culler

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// Status classifies a probed URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, refused, or private
)

// Result is the outcome of probing one target URL.
type Result struct {
	Link       model.Link
	URL        string // the probed URL (link URL or project link)
	Project    bool   // true when URL is the link's project link
	Status     Status
	StatusCode int    // 0 when the connection failed
	Error      string // set for Unreachable targets
}

// Options control a catalog check. Zero values fall back to defaults.
type Options struct {
	Concurrency int
	Timeout     time.Duration

	// PrivateDomains lists hosts where a 404 means "auth required", not
	// dead. GitHub answers 404 for private repos, for example.
	PrivateDomains []string

	// Progress, when set, is called after each probed target.
	Progress func(done, total int)
}

const (
	defaultConcurrency = 8
	defaultTimeout     = 10 * time.Second
	maxRedirects       = 10
)

type target struct {
	link    model.Link
	url     string
	project bool
}

// CheckCatalog probes every target of the catalog concurrently. Results
// come back in catalog order, a link's project link directly after its
// main URL.
func CheckCatalog(links []model.Link, opts Options) []Result {
	var targets []target
	for _, l := range links {
		targets = append(targets, target{link: l, url: l.URL})
		if l.ProjectLink != "" {
			targets = append(targets, target{link: l, url: l.ProjectLink, project: true})
		}
	}
	if len(targets) == 0 {
		return nil
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	private := make(map[string]bool, len(opts.PrivateDomains))
	for _, domain := range opts.PrivateDomains {
		private[strings.ToLower(domain)] = true
	}

	// The net/http client logs protocol noise straight to the default
	// logger; silence it for the duration of the check.
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	results := make([]Result, len(targets))
	jobs := make(chan int, len(targets))

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	done := 0

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = probe(client, targets[idx], private)

				if opts.Progress != nil {
					progressMu.Lock()
					done++
					opts.Progress(done, len(targets))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// CategoryResults groups probe results under their link's category.
type CategoryResults struct {
	Category string
	Results  []Result
}

// ByCategory splits results into category groups, preserving each
// category's first-seen order.
func ByCategory(results []Result) []CategoryResults {
	var groups []CategoryResults
	index := make(map[string]int)

	for _, r := range results {
		i, ok := index[r.Link.Category]
		if !ok {
			i = len(groups)
			index[r.Link.Category] = i
			groups = append(groups, CategoryResults{Category: r.Link.Category})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}

// probe issues a HEAD request, falling back to GET for servers that
// reject HEAD, and classifies the response.
func probe(client *http.Client, tgt target, private map[string]bool) Result {
	result := Result{Link: tgt.link, URL: tgt.url, Project: tgt.project}

	resp, err := client.Head(tgt.url)
	if err != nil {
		resp, err = client.Get(tgt.url)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if isPrivateHost(tgt.url, private) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 500s and 403s can be temporary or auth-gated, never dead.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

// isPrivateHost reports whether the URL's host matches a private domain,
// either exactly or as a subdomain.
func isPrivateHost(rawURL string, private map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if private[host] {
		return true
	}
	for domain := range private {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError collapses verbose transport errors into short categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
