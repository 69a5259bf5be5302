package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"xsd-binder/internal/config"
	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/export"
	"xsd-binder/internal/loader"
	"xsd-binder/internal/schema"
)

func newLogger(inv *invocation) *slog.Logger {
	// Validate has already checked the level.
	level, _ := inv.cfg.Level()

	return slog.New(slog.NewTextHandler(inv.stderr, &slog.HandlerOptions{Level: level}))
}

// documentURL turns a command-line argument into an absolute document URL.
// Arguments without a scheme are local paths.
func documentURL(arg string) (string, error) {
	if u, err := url.Parse(arg); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return arg, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("invalid schema path %q: %w", arg, err)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// build loads the schema named by the invocation and exports its model.
func build(ctx context.Context, inv *invocation, log *slog.Logger) (*export.Model, error) {
	cfg := inv.cfg

	policy, err := schema.ParseDuplicatePolicy(cfg.Duplicates)
	if err != nil {
		return nil, err
	}

	rawURL, err := documentURL(inv.url)
	if err != nil {
		return nil, err
	}

	l := loader.New(newFetcher(cfg, log), loader.Options{
		Concurrency: cfg.Concurrency,
		Logger:      log,
		Schema:      []schema.Option{schema.WithDuplicatePolicy(policy)},
	})

	if _, err := l.Import(ctx, rawURL); err != nil {
		return nil, err
	}

	model := export.Build(l.Context(), export.Options{IncludeBuiltins: cfg.IncludeBuiltins})
	reportDiagnostics(log, l.Context().Diagnostics())

	return model, nil
}

func newFetcher(cfg *config.Config, log *slog.Logger) *loader.HTTPFetcher {
	return loader.NewHTTPFetcher(loader.HTTPOptions{
		AllowLocal: cfg.AllowLocal,
		ForceHost:  cfg.ForceHost,
		ForcePort:  cfg.ForcePort,
		CacheDir:   cfg.CacheDir,
		Client:     &http.Client{Timeout: cfg.Timeout},
		Logger:     log,
	})
}

func reportDiagnostics(log *slog.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		log.Error(d.Message, "code", d.Code, "node", d.Node, "document", d.Document)
	}

	for _, d := range diags.Warnings {
		log.Warn(d.Message, "code", d.Code, "node", d.Node, "document", d.Document)
	}

	for _, d := range diags.Infos {
		log.Debug(d.Message, "code", d.Code, "node", d.Node, "document", d.Document)
	}

	log.Info("model built", "errors", len(diags.Errors), "warnings", len(diags.Warnings))
}

func runConvert(ctx context.Context, inv *invocation) error {
	log := newLogger(inv)

	model, err := build(ctx, inv, log)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(inv.cfg.Format)
	if err != nil {
		return err
	}

	paths, err := export.WriteDir(model, inv.cfg.OutDir, format)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintln(inv.stdout, path)
	}

	return nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runDump(ctx context.Context, inv *invocation) error {
	model, err := build(ctx, inv, newLogger(inv))
	if err != nil {
		return err
	}

	dumpConfig.Fdump(inv.stdout, model)

	return nil
}
