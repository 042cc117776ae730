package pagecap

import "log/slog"

// Registry maps platform IDs to adapter instances. It is populated once at
// startup with an explicit, ordered registration list and is read-only
// afterwards, so no locking is required.
//
// URL resolution is first-match-wins in registration order, not best-match:
// the earliest registered adapter whose Match returns true claims the URL.
type Registry struct {
	logger   *slog.Logger
	adapters []Adapter
	byID     map[string]Adapter
}

// NewRegistry creates an empty Registry. The logger records rejected
// duplicate registrations; pass nil to discard.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		logger: logger,
		byID:   make(map[string]Adapter),
	}
}

// Register adds an adapter. A second registration under the same platform ID
// is logged and ignored, preserving first-registered-wins semantics.
func (r *Registry) Register(a Adapter) {
	id := a.Info().ID
	if _, ok := r.byID[id]; ok {
		r.logger.Warn("duplicate adapter registration ignored", "platform", id)
		return
	}
	r.byID[id] = a
	r.adapters = append(r.adapters, a)
}

// ForURL returns the first adapter, in registration order, whose Match
// returns true for the URL. Returns nil when no adapter claims the URL;
// callers fall back to a Generic adapter explicitly.
func (r *Registry) ForURL(rawURL string) Adapter {
	for _, a := range r.adapters {
		if a.Match(rawURL) {
			return a
		}
	}
	return nil
}

// Get returns the adapter registered under the platform ID, or nil.
func (r *Registry) Get(id string) Adapter {
	return r.byID[id]
}

// CanHandle reports whether any registered adapter claims the URL.
func (r *Registry) CanHandle(rawURL string) bool {
	return r.ForURL(rawURL) != nil
}

// Adapters returns all adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// ContentAdapters returns adapters with the content capability, in
// registration order.
func (r *Registry) ContentAdapters() []Adapter {
	return r.filter(func(c Capabilities) bool { return c.Content })
}

// VideoAdapters returns adapters with the video capability, in
// registration order.
func (r *Registry) VideoAdapters() []Adapter {
	return r.filter(func(c Capabilities) bool { return c.Video })
}

// SubtitleAdapters returns adapters with the subtitle capability, in
// registration order.
func (r *Registry) SubtitleAdapters() []Adapter {
	return r.filter(func(c Capabilities) bool { return c.Subtitles })
}

func (r *Registry) filter(keep func(Capabilities) bool) []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if keep(a.Capabilities()) {
			out = append(out, a)
		}
	}
	return out
}
