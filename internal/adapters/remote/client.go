package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"
)

// Endpoints of the remote metadata REST API.
const (
	loraListPath       = "/api/lm/loras/list"
	checkpointListPath = "/api/lm/checkpoints/list"
	triggerWordsPath   = "/api/lm/loras/get-trigger-words"
	randomSamplePath   = "/api/lm/loras/random-sample"
	cyclerListPath     = "/api/lm/loras/cycler-list"
	listPageSize       = "9999"
	tracerName         = "lorabridge/remote"
)

// Options configures a Client. MapPath translates a remote absolute
// path into the local mount's prefix; identity when nil.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	AllowStale bool
	MapPath    func(string) string
}

// Client implements ports.MetadataClient against the remote instance.
// List responses go through the shared TTL cache so one workflow
// execution resolving many entries issues a single list call.
type Client struct {
	base       string
	timeout    time.Duration
	ttl        time.Duration
	allowStale bool
	mapPath    func(string) string
	httpc      *http.Client
	cache      *Cache
	logger     ports.Logger
	tracer     trace.Tracer
}

var _ ports.MetadataClient = (*Client)(nil)

// NewClient creates a client over the shared cache.
func NewClient(opts Options, cache *Cache, logger ports.Logger) *Client {
	mapPath := opts.MapPath
	if mapPath == nil {
		mapPath = func(p string) string { return p }
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Client{
		base:       opts.BaseURL,
		timeout:    timeout,
		ttl:        ttl,
		allowStale: opts.AllowStale,
		mapPath:    mapPath,
		httpc:      &http.Client{},
		cache:      cache,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// WithTransport overrides the HTTP transport, for tests.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.httpc = &http.Client{Transport: rt}
	return c
}

// ListLoras returns the full remote lora list through the TTL cache.
func (c *Client) ListLoras(ctx context.Context) (ports.ListResult, error) {
	return c.listCached(ctx, loraListPath)
}

// ListCheckpoints returns the full remote checkpoint list through the TTL cache.
func (c *Client) ListCheckpoints(ctx context.Context) (ports.ListResult, error) {
	return c.listCached(ctx, checkpointListPath)
}

// GetLoraInfo resolves a lora name to a local-relative path plus its
// trigger words. The relative path is rebuilt from the remote item's
// folder and the basename of its (prefix-translated) absolute path, so
// the local model loader can resolve it under its own root. When the
// cached list has no match, the per-name trigger-word endpoint is
// tried. The returned RelativePath is always usable, even on error, so
// local file loading never blocks on remote metadata.
func (c *Client) GetLoraInfo(ctx context.Context, name string) (domain.LoraInfo, error) {
	res, err := c.ListLoras(ctx)
	if err == nil {
		if item, ok := findItem(res.Items, name); ok {
			return domain.LoraInfo{
				RelativePath: c.relativePath(item),
				TriggerWords: item.TriggerWords,
			}, nil
		}
		words, werr := c.TriggerWords(ctx, name)
		if werr == nil {
			return domain.LoraInfo{RelativePath: name, TriggerWords: words}, nil
		}
		err = werr
	}
	return domain.LoraInfo{RelativePath: name}, err
}

// TriggerWords returns the trigger words for a single lora name.
func (c *Client) TriggerWords(ctx context.Context, name string) ([]string, error) {
	var out struct {
		TriggerWords []string `json:"trigger_words"`
	}
	q := url.Values{"name": {name}}
	if err := c.getJSON(ctx, triggerWordsPath, q, &out); err != nil {
		return nil, err
	}
	return out.TriggerWords, nil
}

// LoraHash returns the SHA-256 for a lora by name.
func (c *Client) LoraHash(ctx context.Context, name string) (string, error) {
	return c.hashFrom(ctx, c.ListLoras, name)
}

// CheckpointHash returns the SHA-256 for a checkpoint by name.
func (c *Client) CheckpointHash(ctx context.Context, name string) (string, error) {
	return c.hashFrom(ctx, c.ListCheckpoints, name)
}

// RandomSample asks the remote to draw a random selection.
func (c *Client) RandomSample(ctx context.Context, req domain.SampleRequest) (domain.EntryList, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, randomSamplePath, req, &raw); err != nil {
		return nil, err
	}
	entries, err := decodeEntryPayload(raw)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode random sample response")
	}
	return entries, nil
}

// CyclerList asks the remote for an ordered lora list.
func (c *Client) CyclerList(ctx context.Context, req domain.CyclerRequest) ([]domain.ModelInfo, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, cyclerListPath, req, &raw); err != nil {
		return nil, err
	}
	items, err := decodeItemPayload(raw)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode cycler list response")
	}
	return toModelInfos(items), nil
}

func (c *Client) listCached(ctx context.Context, endpoint string) (ports.ListResult, error) {
	key := Key(endpoint, "page_size="+listPageSize)
	if v, ok := c.cache.Get(key); ok {
		return ports.ListResult{Items: v.([]domain.ModelInfo)}, nil
	}

	var payload struct {
		Items []remoteItem `json:"items"`
	}
	q := url.Values{"page_size": {listPageSize}}
	if err := c.getJSON(ctx, endpoint, q, &payload); err != nil {
		if c.allowStale {
			if v, ok := c.cache.GetStale(key); ok {
				c.logger.Warn("remote list fetch failed, serving stale cache: " + err.Error())
				return ports.ListResult{Items: v.([]domain.ModelInfo), Stale: true}, nil
			}
		}
		return ports.ListResult{}, err
	}

	items := toModelInfos(payload.Items)
	c.cache.Set(key, items, c.ttl)
	return ports.ListResult{Items: items}, nil
}

func (c *Client) hashFrom(ctx context.Context, list func(context.Context) (ports.ListResult, error), name string) (string, error) {
	res, err := list(ctx)
	if err != nil {
		return "", err
	}
	item, ok := findItem(res.Items, name)
	if !ok {
		return "", zerr.With(domain.ErrEntryNotFound, "name", name)
	}
	return item.SHA256, nil
}

// relativePath rebuilds the path the local loader resolves against its
// model root: "<folder>/<basename>", or just the basename when the
// item sits at the root.
func (c *Client) relativePath(item domain.ModelInfo) string {
	base := path.Base(c.mapPath(item.FilePath))
	if item.Folder == "" {
		return base
	}
	return item.Folder + "/" + base
}

func (c *Client) getJSON(ctx context.Context, p string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, p, query, nil, out)
}

func (c *Client) postJSON(ctx context.Context, p string, body, out any) error {
	return c.do(ctx, http.MethodPost, p, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, body, out any) error {
	if c.base == "" {
		return domain.ErrNotConfigured
	}

	ctx, span := c.tracer.Start(ctx, "remote.fetch", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("url.path", p),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + p
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return zerr.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return zerr.Wrap(err, "failed to build remote request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		return classifyTransportError(err, p)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zerr.With(domain.ErrRemoteStatus, "status", strconv.Itoa(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return zerr.Wrap(err, "failed to decode remote response")
	}
	return nil
}

// classifyTransportError maps transport failures onto the error
// taxonomy: deadline expiry is a timeout, anything else unreachable.
func classifyTransportError(err error, p string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return zerr.With(domain.ErrRemoteTimeout, "path", p)
	}
	return zerr.With(domain.ErrRemoteUnreachable, "path", p)
}

// remoteItem is the wire shape of one list item. Older remote versions
// report "hash" instead of "sha256".
type remoteItem struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Folder   string `json:"folder"`
	SHA256   string `json:"sha256"`
	Hash     string `json:"hash"`
	Civitai  *struct {
		TrainedWords []string `json:"trainedWords"`
	} `json:"civitai"`
}

func toModelInfos(items []remoteItem) []domain.ModelInfo {
	out := make([]domain.ModelInfo, 0, len(items))
	for _, it := range items {
		info := domain.ModelInfo{
			FileName: it.FileName,
			FilePath: it.FilePath,
			Folder:   it.Folder,
			SHA256:   it.SHA256,
		}
		if info.SHA256 == "" {
			info.SHA256 = it.Hash
		}
		if it.Civitai != nil {
			info.TriggerWords = it.Civitai.TrainedWords
		}
		out = append(out, info)
	}
	return out
}

func findItem(items []domain.ModelInfo, name string) (domain.ModelInfo, bool) {
	for _, it := range items {
		if it.FileName == name {
			return it, true
		}
	}
	return domain.ModelInfo{}, false
}

// remoteEntry is the wire shape of one sampled lora.
type remoteEntry struct {
	Name         string   `json:"name"`
	Strength     float64  `json:"strength"`
	ClipStrength *float64 `json:"clipStrength"`
	Active       *bool    `json:"active"`
}

// decodeEntryPayload accepts either a bare array or {"loras": [...]},
// both of which the remote emits depending on its version.
func decodeEntryPayload(raw json.RawMessage) (domain.EntryList, error) {
	var entries []remoteEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		var wrapped struct {
			Loras []remoteEntry `json:"loras"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		entries = wrapped.Loras
	}

	out := make(domain.EntryList, 0, len(entries))
	for _, e := range entries {
		entry := domain.Entry{Name: e.Name, Strength: e.Strength, ClipStrength: e.Strength, Active: true}
		if e.ClipStrength != nil {
			entry.ClipStrength = *e.ClipStrength
		}
		if e.Active != nil {
			entry.Active = *e.Active
		}
		out = append(out, entry)
	}
	return out, nil
}

func decodeItemPayload(raw json.RawMessage) ([]remoteItem, error) {
	var items []remoteItem
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Loras []remoteItem `json:"loras"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		items = wrapped.Loras
	}
	return items, nil
}
