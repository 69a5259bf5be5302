// Package loader schedules the schema documents of one conversion:
// it fetches the documents registered through import and include,
// declares each one, and resolves them all once nothing new is reachable.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"xsd-binder/internal/builtin"
	"xsd-binder/internal/namespace"
	"xsd-binder/internal/schema"
	"xsd-binder/internal/source"
	"xsd-binder/internal/xsdparse"
)

const defaultConcurrency = 4

// Options configures a Loader.
type Options struct {
	// Concurrency bounds simultaneous fetches.
	Concurrency int
	// Logger receives load events.
	Logger *slog.Logger
	// Schema holds extra options for the compile context.
	Schema []schema.Option
}

type pending struct {
	ns  *namespace.Namespace
	url string
}

// Loader loads a schema and everything it imports or includes.
type Loader struct {
	ctx     *schema.Context
	fetcher Fetcher
	opts    Options
	log     *slog.Logger

	queue []pending
	seen  map[string]bool
	docs  []*xsdparse.Document
}

// New creates a Loader with a fresh compile context that has the
// built-in namespaces registered.
func New(fetcher Fetcher, opts Options) *Loader {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	l := &Loader{
		fetcher: fetcher,
		opts:    opts,
		log:     opts.Logger,
		seen:    make(map[string]bool),
	}

	schemaOpts := append([]schema.Option{
		schema.WithLogger(opts.Logger),
		schema.WithImportFunc(l.enqueue),
	}, opts.Schema...)

	l.ctx = schema.NewContext(schemaOpts...)
	builtin.Register(l.ctx)

	return l
}

// Context returns the compile context shared by every loaded document.
func (l *Loader) Context() *schema.Context {
	return l.ctx
}

// Documents returns the loaded documents in load order.
func (l *Loader) Documents() []*xsdparse.Document {
	return l.docs
}

// Import loads the schema at url and every document it reaches, then
// resolves all of them. It returns the namespace of the schema at url.
func (l *Loader) Import(ctx context.Context, url string) (*namespace.Namespace, error) {
	first := len(l.docs)
	l.enqueue(nil, url)

	if err := l.drain(ctx); err != nil {
		return nil, err
	}

	// Every reachable document is declared; references across documents
	// can now resolve regardless of load order.
	for _, doc := range l.docs[first:] {
		doc.Resolve()
	}

	if first >= len(l.docs) {
		return l.namespaceOf(url)
	}

	ns := l.docs[first].Source.TargetNamespace
	l.log.Info("schema loaded", "url", url, "namespace", ns.URI, "documents", len(l.docs)-first)

	return ns, nil
}

func (l *Loader) namespaceOf(url string) (*namespace.Namespace, error) {
	for _, doc := range l.docs {
		if doc.Source.URL == url {
			return doc.Source.TargetNamespace, nil
		}
	}

	return nil, fmt.Errorf("schema %s was not loaded", url)
}

func (l *Loader) enqueue(ns *namespace.Namespace, url string) {
	if ns != nil && (ns.URI == namespace.XSD || ns.URI == namespace.XML) {
		l.log.Debug("skipping built-in namespace import", "namespace", ns.URI, "url", url)
		return
	}

	if l.seen[url] {
		return
	}

	l.seen[url] = true
	l.queue = append(l.queue, pending{ns: ns, url: url})
}

// drain fetches the queue batch by batch. Fetches within a batch run
// concurrently; declaring runs sequentially in registration order since
// the compile context is single-threaded.
func (l *Loader) drain(ctx context.Context) error {
	for len(l.queue) > 0 {
		batch := l.queue
		l.queue = nil

		data, err := l.fetchAll(ctx, batch)
		if err != nil {
			return err
		}

		for i, p := range batch {
			src := source.New(p.url, p.ns, l.ctx.Registry())

			doc, err := xsdparse.ParseBytes(l.ctx, src, data[i])
			if err != nil {
				return err
			}

			l.docs = append(l.docs, doc)
		}
	}

	return nil
}

func (l *Loader) fetchAll(ctx context.Context, batch []pending) ([][]byte, error) {
	data := make([][]byte, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)

	for i, p := range batch {
		g.Go(func() error {
			body, err := l.fetcher.Fetch(gctx, p.url)
			if err != nil {
				return err
			}

			data[i] = body

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}
