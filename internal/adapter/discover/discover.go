// Package discover scrapes a source's HTML listing page for the
// country folders it currently publishes, so new countries can be added
// to the configuration without guessing folder names.
package discover

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
)

type Discoverer struct {
	client *http.Client
	log    *slog.Logger
}

func New(cfg *config.FetcherConfig, log *slog.Logger) *Discoverer {
	return &Discoverer{
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With(slog.String("item", "Discoverer")),
	}
}

// Folders fetches the listing page and returns the sorted set of
// folder-like link targets: relative path segments without a file
// extension. Works against autoindex-style pages and repository tree
// listings alike.
func (d *Discoverer) Folders(ctx context.Context, listingURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", common.ErrBadStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse listing page: %w", err)
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if folder, ok := folderName(href); ok {
			seen[folder] = struct{}{}
		}
	})

	folders := make([]string, 0, len(seen))
	for folder := range seen {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	d.log.Info("Discovered folders", slog.String("url", listingURL), slog.Int("count", len(folders)))

	return folders, nil
}

func folderName(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	name := path.Base(strings.TrimRight(u.Path, "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", false
	}

	// Links with a file extension point at files, not country folders.
	if path.Ext(name) != "" {
		return "", false
	}

	return name, true
}
