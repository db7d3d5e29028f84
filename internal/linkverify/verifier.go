package linkverify

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/retry"
)

// Options configures a Verifier.
type Options struct {
	// Concurrency bounds page parsing and external requests.
	Concurrency int
	// External enables HTTP checks of absolute URLs.
	External bool
	// Timeout applies to each external request.
	Timeout time.Duration
	// Client overrides the HTTP client used for external checks.
	Client *http.Client
	// Retry governs repeated requests after network errors and 5xx
	// responses. Nil uses retry.DefaultPolicy.
	Retry *retry.Policy
}

// BrokenLink is one link that failed verification.
type BrokenLink struct {
	Page   string `json:"page"`
	URL    string `json:"url"`
	Tag    string `json:"tag"`
	Status int    `json:"status,omitempty"`
	Reason string `json:"reason"`
}

// Result summarizes a verification run.
type Result struct {
	Pages   int          `json:"pages"`
	Links   int          `json:"links"`
	Checked int          `json:"checked"`
	Broken  []BrokenLink `json:"broken,omitempty"`
}

// OK reports whether no broken link was found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Verifier checks the links of one output directory.
type Verifier struct {
	dir        string
	opts       Options
	httpClient *http.Client
}

// New returns a Verifier for the site rooted at dir.
func New(dir string, opts Options) *Verifier {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retry == nil {
		p := retry.DefaultPolicy()
		opts.Retry = &p
	}
	client := opts.Client
	if client == nil {
		// Proxy settings come from HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
		client = &http.Client{
			Timeout:   opts.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return &Verifier{dir: dir, opts: opts, httpClient: client}
}

// Verify parses every HTML page under the directory and checks its links.
func (v *Verifier) Verify(ctx context.Context) (*Result, error) {
	files, err := v.htmlFiles()
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*Page, len(files))
	var mu sync.Mutex
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(v.opts.Concurrency)
	for _, rel := range files {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := ExtractPage(filepath.Join(v.dir, filepath.FromSlash(rel)))
			if err != nil {
				if ce, ok := errors.AsClassified(err); ok {
					return ce.WithContext("page", rel)
				}
				return err
			}
			mu.Lock()
			pages[rel] = p
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Pages: len(files)}
	var external []externalCheck
	for _, rel := range files {
		for _, link := range pages[rel].Links {
			res.Links++
			switch classify(link.URL) {
			case classInternal:
				res.Checked++
				if reason := v.checkInternal(pages, rel, link.URL); reason != "" {
					res.Broken = append(res.Broken, BrokenLink{Page: rel, URL: link.URL, Tag: link.Tag, Reason: reason})
				}
			case classExternal:
				if v.opts.External {
					external = append(external, externalCheck{page: rel, link: link})
				}
			case classSkip:
			}
		}
	}

	broken, err := v.checkExternalLinks(ctx, external)
	if err != nil {
		return nil, err
	}
	res.Checked += len(external)
	res.Broken = append(res.Broken, broken...)

	slices.SortFunc(res.Broken, func(a, b BrokenLink) int {
		return cmp.Or(strings.Compare(a.Page, b.Page), strings.Compare(a.URL, b.URL))
	})
	for _, b := range res.Broken {
		slog.Warn("Broken link detected", "page", b.Page, "url", b.URL, "status", b.Status, "reason", b.Reason)
	}
	return res, nil
}

func (v *Verifier) htmlFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(v.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(v.dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "list site pages").
			WithContext("path", v.dir).
			Build()
	}
	slices.Sort(files)
	return files, nil
}

// checkInternal returns why a site-relative link from page is broken, or "".
func (v *Verifier) checkInternal(pages map[string]*Page, page, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid URL: " + err.Error()
	}

	target := page
	if u.Path != "" {
		if strings.HasPrefix(u.Path, "/") {
			target = path.Clean(strings.TrimPrefix(u.Path, "/"))
		} else {
			target = path.Join(path.Dir(page), u.Path)
		}
		if target == ".." || strings.HasPrefix(target, "../") {
			return "points outside the site"
		}
		resolved, ok := v.localFile(target)
		if !ok {
			return "missing file " + target
		}
		target = resolved
	}

	if u.Fragment == "" {
		return ""
	}
	p, ok := pages[target]
	if !ok {
		// Fragments of non-HTML files are not checked.
		return ""
	}
	if !p.HasID(u.Fragment) {
		return fmt.Sprintf("missing anchor #%s in %s", u.Fragment, target)
	}
	return ""
}

// localFile maps a site path to an existing file, trying index.html for
// directories.
func (v *Verifier) localFile(rel string) (string, bool) {
	info, err := os.Stat(filepath.Join(v.dir, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	if !info.IsDir() {
		return rel, true
	}
	index := path.Join(rel, "index.html")
	if _, err := os.Stat(filepath.Join(v.dir, filepath.FromSlash(index))); err != nil {
		return "", false
	}
	return index, true
}

type externalCheck struct {
	page string
	link *Link
}

func (v *Verifier) checkExternalLinks(ctx context.Context, checks []externalCheck) ([]BrokenLink, error) {
	if len(checks) == 0 {
		return nil, nil
	}

	type outcome struct {
		status int
		err    error
	}
	results := make(map[string]outcome)
	var mu sync.Mutex

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(v.opts.Concurrency)
	seen := make(map[string]bool)
	for _, c := range checks {
		target := absoluteURL(c.link.URL)
		if seen[target] {
			continue
		}
		seen[target] = true
		grp.Go(func() error {
			status, err := v.checkExternalLink(gctx, target)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			mu.Lock()
			results[target] = outcome{status: status, err: err}
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var broken []BrokenLink
	for _, c := range checks {
		o := results[absoluteURL(c.link.URL)]
		if o.err != nil {
			broken = append(broken, BrokenLink{Page: c.page, URL: c.link.URL, Tag: c.link.Tag, Status: o.status, Reason: o.err.Error()})
		}
	}
	return broken, nil
}

func absoluteURL(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}

// checkExternalLink probes linkURL, retrying transient failures.
func (v *Verifier) checkExternalLink(ctx context.Context, linkURL string) (int, error) {
	var status int
	err := v.opts.Retry.Do(ctx, func(int) (bool, error) {
		var err error
		status, err = v.probe(ctx, linkURL)
		return err != nil && transient(status), err
	})
	return status, err
}

// transient reports failures worth another attempt: no response at all or a
// server error.
func transient(status int) bool {
	return status == 0 || status >= http.StatusInternalServerError
}

// probe sends HEAD and falls back to GET for servers that reject or do not
// route HEAD.
func (v *Verifier) probe(ctx context.Context, linkURL string) (int, error) {
	status, err := v.request(ctx, http.MethodHead, linkURL)
	if err == nil && (status == http.StatusNotFound || status == http.StatusMethodNotAllowed) {
		status, err = v.request(ctx, http.MethodGet, linkURL)
	}
	if err != nil {
		return 0, err
	}
	if isReachable(status) || status < 400 {
		return status, nil
	}
	return status, fmt.Errorf("HTTP %d: %s", status, http.StatusText(status))
}

func (v *Verifier) request(ctx context.Context, method, linkURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, linkURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "symdoc-linkverify/1.0")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// isReachable reports statuses that mean the URL exists but refused this
// client: authentication, authorization or rate limiting.
func isReachable(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusMethodNotAllowed, http.StatusTooManyRequests:
		return true
	}
	return false
}
