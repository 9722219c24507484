package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lorabridge/lorabridge/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "lorabridge/proxy"

// Options configures a Handler. RemoteURL is read per request so a
// config reload takes effect without restarting the server.
type Options struct {
	RemoteURL func() string
	Timeout   time.Duration
	Table     Table
	Bus       ports.EventBus
	Metadata  ports.MetadataClient
	Logger    ports.Logger
}

// Handler is the HTTP front of the gateway. Matched requests are
// forwarded to the remote instance, except the broadcast routes, which
// are answered locally so their events reach the local front end.
type Handler struct {
	table   Table
	remote  func() string
	timeout time.Duration
	httpc   *http.Client
	bus     ports.EventBus
	meta    ports.MetadataClient
	logger  ports.Logger
	tracer  trace.Tracer
}

// New builds a Handler over the default route table unless Options
// carries one.
func New(opts Options) *Handler {
	table := opts.Table
	if table == nil {
		table = DefaultTable()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		table:   table,
		remote:  opts.RemoteURL,
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
		bus:     opts.Bus,
		meta:    opts.Metadata,
		logger:  opts.Logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// WithTransport overrides the HTTP transport, for tests.
func (h *Handler) WithTransport(rt http.RoundTripper) *Handler {
	h.httpc = &http.Client{Transport: rt, Timeout: h.timeout}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rule, ok := h.table.Match(r.URL.Path)
	if !ok {
		h.logger.Warn("no route for " + r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown route"})
		return
	}

	if rule.Disposition == LocalHandle {
		h.handleLocal(w, r, rule)
		return
	}

	base := h.remote()
	if base == "" {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "no remote instance configured"})
		return
	}

	if rule.Disposition == ForwardWS {
		h.forwardWS(w, r, base)
		return
	}
	h.forward(w, r, base)
}

// forward relays one HTTP request and copies the response back, minus
// headers that no longer describe the rewritten body.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, base string) {
	ctx, span := h.tracer.Start(r.Context(), "proxy.forward", trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("url.path", r.URL.Path),
	))
	defer span.End()

	target := base + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}
	copyHeaders(req.Header, r.Header, hopByHopRequest)

	resp, err := h.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		h.logger.Error(err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "remote instance unavailable: " + err.Error()})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	copyHeaders(w.Header(), resp.Header, hopByHopResponse)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

var (
	hopByHopRequest  = []string{"Host", "Transfer-Encoding", "Connection", "Keep-Alive", "Upgrade", "Proxy-Connection", "Te", "Trailer"}
	hopByHopResponse = []string{"Transfer-Encoding", "Content-Encoding", "Content-Length", "Connection"}
)

func copyHeaders(dst, src http.Header, skip []string) {
	for k, vs := range src {
		if headerIn(k, skip) {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func headerIn(key string, set []string) bool {
	for _, s := range set {
		if strings.EqualFold(key, s) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
