package annotations

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/content"
	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

// Fetcher resolves content URIs in one batched call. *content.Client
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, uris []string) (map[string]content.Record, error)
}

// Assembler turns raw notes API records into annotations, fetching all the
// content a batch needs with a single call.
type Assembler struct {
	fetcher Fetcher
	log     logger.Logger
}

func NewAssembler(f Fetcher, log logger.Logger) *Assembler {
	return &Assembler{fetcher: f, log: log}
}

// Assemble builds one annotation per record, in input order. It is all or
// nothing: on any error no annotations are returned.
//
// Record types are checked before any content is fetched, so a batch with an
// unknown type fails with *UnknownTypeError and makes no network call.
func (a *Assembler) Assemble(ctx context.Context, records []Record) ([]domain.Annotation, error) {
	kinds := make([]domain.Kind, len(records))
	for i, r := range records {
		k := domain.Kind(r.Type)
		if !k.Valid() {
			return nil, &UnknownTypeError{Type: r.Type, ID: r.ID}
		}
		kinds[i] = k
	}

	keys := FetchKeys(records)
	fetched := map[string]content.Record{}
	if len(keys) > 0 {
		start := time.Now()
		var err error
		fetched, err = a.fetcher.Fetch(ctx, keys)
		if err != nil {
			return nil, err
		}
		a.log.Debug("content resolved for batch",
			logger.Int("records", len(records)),
			logger.Int("uris", len(keys)),
			logger.Duration("duration", time.Since(start)))
	}

	out := make([]domain.Annotation, 0, len(records))
	for i, r := range records {
		ann, err := build(r, kinds[i], fetched)
		if err != nil {
			return nil, err
		}
		out = append(out, ann)
	}
	return out, nil
}

// AssembleOne is Assemble for a single record.
func (a *Assembler) AssembleOne(ctx context.Context, r Record) (domain.Annotation, error) {
	out, err := a.Assemble(ctx, []Record{r})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// FetchKeys lists the content keys a batch needs: every highlight URI in
// record order, then every ref URI, without duplicates.
func FetchKeys(records []Record) []string {
	var keys []string
	seen := make(map[string]struct{})
	add := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, r := range records {
		for _, s := range spans(r) {
			add(FetchKey(r.Locale, s.URI))
		}
	}
	for _, r := range records {
		if domain.Kind(r.Type) != domain.KindReference {
			continue
		}
		for _, l := range r.Refs {
			add(FetchKey(refLocale(r, l), l.URI))
		}
	}
	return keys
}

func build(r Record, kind domain.Kind, fetched map[string]content.Record) (domain.Annotation, error) {
	switch kind {
	case domain.KindBookmark:
		return newBookmark(r), nil

	case domain.KindJournal:
		j := newJournal(r, kind)
		return &j, nil

	case domain.KindHighlight:
		frags, err := lookupSpans(r, fetched)
		if err != nil {
			return nil, err
		}
		h := newHighlight(r, kind, frags)
		return &h, nil

	case domain.KindReference:
		frags, err := lookupSpans(r, fetched)
		if err != nil {
			return nil, err
		}
		refs, err := lookupRefs(r, fetched)
		if err != nil {
			return nil, err
		}
		return newReference(r, frags, refs), nil
	}
	return nil, &UnknownTypeError{Type: r.Type, ID: r.ID}
}

func lookupSpans(r Record, fetched map[string]content.Record) ([]content.Record, error) {
	ss := spans(r)
	out := make([]content.Record, 0, len(ss))
	for _, s := range ss {
		key := FetchKey(r.Locale, s.URI)
		rec, ok := fetched[key]
		if !ok {
			return nil, &content.MissingContentError{URI: key}
		}
		out = append(out, rec)
	}
	return out, nil
}

func lookupRefs(r Record, fetched map[string]content.Record) ([]content.Record, error) {
	out := make([]content.Record, 0, len(r.Refs))
	for _, l := range r.Refs {
		key := FetchKey(refLocale(r, l), l.URI)
		rec, ok := fetched[key]
		if !ok {
			return nil, &content.MissingContentError{URI: key}
		}
		out = append(out, rec)
	}
	return out, nil
}
