// Package feed reads published articles from a Ghost blog's RSS endpoints and
// shapes them for the knowledge hub. Results are cached per tag so repeated
// page loads do not hammer the blog.
package feed

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	// DefaultTTL matches the blog pages' revalidation window.
	DefaultTTL = 10 * time.Minute

	excerptMaxRunes = 280
)

// Post is one article as rendered on the knowledge hub.
type Post struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Excerpt     string    `json:"excerpt"`
	ImageURL    string    `json:"image_url,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Reader fetches and caches Ghost RSS feeds.
type Reader struct {
	baseURL string
	parser  *gofeed.Parser
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	posts     []Post
	fetchedAt time.Time
}

type Option func(*Reader)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) {
		r.parser.Client = c
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Reader) {
		r.ttl = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reader) {
		r.now = now
	}
}

// NewReader builds a Reader for the Ghost instance at baseURL
// (e.g. "https://blog.example.com").
func NewReader(baseURL string, opts ...Option) *Reader {
	r := &Reader{
		baseURL: strings.TrimRight(baseURL, "/"),
		parser:  gofeed.NewParser(),
		ttl:     DefaultTTL,
		now:     time.Now,
		cache:   make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FeedURL returns the RSS endpoint for a tag, or the site-wide feed when tag
// is empty. Ghost serves tag feeds at /tag/<slug>/rss/.
func (r *Reader) FeedURL(tag string) string {
	if tag == "" {
		return r.baseURL + "/rss/"
	}
	return r.baseURL + "/tag/" + url.PathEscape(tag) + "/rss/"
}

// Posts returns the published articles for a tag, newest first as Ghost emits
// them. Cached results are served until the TTL lapses; a fetch failure with a
// warm cache returns the stale entry rather than an error.
func (r *Reader) Posts(ctx context.Context, tag string) ([]Post, error) {
	r.mu.Lock()
	entry, ok := r.cache[tag]
	r.mu.Unlock()
	if ok && r.now().Sub(entry.fetchedAt) < r.ttl {
		return entry.posts, nil
	}

	feed, err := r.parser.ParseURLWithContext(r.FeedURL(tag), ctx)
	if err != nil {
		if ok {
			return entry.posts, nil
		}
		return nil, fmt.Errorf("fetching feed for tag %q: %w", tag, err)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, itemToPost(item))
	}

	r.mu.Lock()
	r.cache[tag] = cacheEntry{posts: posts, fetchedAt: r.now()}
	r.mu.Unlock()
	return posts, nil
}

func itemToPost(item *gofeed.Item) Post {
	p := Post{
		Title:    item.Title,
		Link:     item.Link,
		Excerpt:  Excerpt(firstNonEmpty(item.Content, item.Description)),
		ImageURL: firstImage(item),
		Tags:     item.Categories,
	}
	if item.PublishedParsed != nil {
		p.PublishedAt = item.PublishedParsed.UTC()
	}
	return p
}

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	imgPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	wsPattern  = regexp.MustCompile(`\s+`)
)

// Excerpt strips markup from an HTML fragment and truncates the text to a
// card-sized summary.
func Excerpt(htmlFragment string) string {
	text := tagPattern.ReplaceAllString(htmlFragment, " ")
	text = html.UnescapeString(text)
	text = strings.TrimSpace(wsPattern.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= excerptMaxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptMaxRunes])) + "…"
}

// firstImage picks the article's cover image: the feed-level item image if
// set, else an image enclosure, else the first <img> in the body.
func firstImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	for _, body := range []string{item.Content, item.Description} {
		if m := imgPattern.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
