package cachefetch

import (
	"context"
	"fmt"
	"strings"

	cd "github.com/flowgrid/cachefetch/codec"
	pr "github.com/flowgrid/cachefetch/provider"
)

type fetcher struct {
	rawTemplate string
	templates   []keyTemplate
	attribute   string
	multi       bool // template declared more than one key
	maxAttrLen  int

	provider      pr.Provider
	decoder       cd.Decoder
	log           Logger
	hooks         Hooks
	closeProvider bool
}

func newFetcher(opts Options) (*fetcher, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("cachefetch: provider is required")
	}
	if opts.KeyTemplate == "" {
		return nil, fmt.Errorf("cachefetch: key template is required")
	}
	if opts.MaxAttributeLength < 0 {
		return nil, fmt.Errorf("cachefetch: max attribute length must be >= 0")
	}
	attrMode := opts.Attribute != ""
	if !attrMode && strings.Contains(opts.KeyTemplate, ",") {
		return nil, fmt.Errorf("cachefetch: multiple cache keys require a destination attribute")
	}

	templates, err := compileKeyTemplates(opts.KeyTemplate, attrMode)
	if err != nil {
		return nil, fmt.Errorf("cachefetch: invalid key template: %w", err)
	}

	f := &fetcher{
		rawTemplate:   opts.KeyTemplate,
		templates:     templates,
		attribute:     opts.Attribute,
		multi:         len(templates) > 1,
		maxAttrLen:    opts.MaxAttributeLength,
		provider:      opts.Provider,
		closeProvider: opts.CloseProvider,
	}

	// defaults
	f.decoder = opts.Decoder
	if f.decoder == nil {
		f.decoder = cd.Raw{}
	}
	f.log = coalesce[Logger](opts.Logger, NopLogger{})
	f.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	return f, nil
}

func (f *fetcher) Close(ctx context.Context) error {
	if f.closeProvider {
		return f.provider.Close(ctx)
	}
	return nil
}

// Dispatch performs one resolution-and-lookup cycle. Keys are fetched
// sequentially in resolution order and each exactly once; the first
// transport error aborts the remaining lookups. In attribute mode a write is
// accumulated for every found key regardless of the other keys' outcomes, so
// partial results survive onto the not-found path.
func (f *fetcher) Dispatch(ctx context.Context, rec *Record) Outcome {
	keys, err := resolveKeys(f.templates, rec)
	if err != nil {
		f.hooks.EmptyKey(f.rawTemplate)
		f.log.Debug("cache key resolved empty", Fields{"template": f.rawTemplate})
		return Outcome{Status: StatusFailure, Err: err}
	}

	attrMode := f.attribute != ""
	var (
		writes  []AttributeWrite
		body    []byte
		missing bool
	)
	for _, k := range keys {
		raw, ok, err := f.provider.Get(ctx, k)
		if err != nil {
			f.hooks.TransportError(k, err)
			f.log.Warn("cache get failed", Fields{"key": k, "err": err})
			return Outcome{Status: StatusFailure, Err: &FetchError{Key: k, Err: err}}
		}
		if !ok {
			f.hooks.CacheMiss(k)
			missing = true
			continue
		}
		f.hooks.CacheHit(k, len(raw))

		value, err := f.decoder.Decode(raw)
		if err != nil {
			// the entry belongs to the cache's writers; report, don't delete
			f.hooks.ValueDecodeError(k, err)
			f.log.Warn("cache value decode failed", Fields{"key": k, "err": err})
			return Outcome{Status: StatusFailure, Err: &FetchError{Key: k, Err: err}}
		}

		if attrMode {
			writes = append(writes, f.materialize(k, value))
		} else {
			body = value
		}
	}

	if missing {
		return Outcome{Status: StatusNotFound, Writes: writes}
	}
	if attrMode {
		return Outcome{Status: StatusSuccess, Writes: writes}
	}
	return Outcome{Status: StatusSuccess, Body: body, ReplaceBody: true}
}

func (f *fetcher) Route(ctx context.Context, rec *Record) Relationship {
	out := f.Dispatch(ctx, rec)
	switch out.Status {
	case StatusSuccess:
		if out.ReplaceBody {
			rec.Body = out.Body
		}
		applyWrites(rec, out.Writes)
		return RelSuccess
	case StatusNotFound:
		// found keys still populate their attributes
		applyWrites(rec, out.Writes)
		return RelNotFound
	default:
		f.log.Warn("dispatch failed", Fields{"template": f.rawTemplate, "err": out.Err})
		return RelFailure
	}
}

func applyWrites(rec *Record, writes []AttributeWrite) {
	for _, w := range writes {
		rec.SetAttribute(w.Name, w.Value)
	}
}
