package cmd

import (
	"context"
	"fmt"

	"github.com/zjrosen/relens/internal/cachemanager"
	"github.com/zjrosen/relens/internal/config"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/service"
	"github.com/zjrosen/relens/internal/tracing"
)

// newClient builds the service client stack: HTTP, then the result cache,
// then tracing. The returned shutdown flushes pending spans.
func newClient(cfg config.Config) (service.Client, func(context.Context) error, error) {
	httpClient, err := service.NewHTTPClient(service.HTTPOptions{
		BaseURL: cfg.Service.URL,
		Timeout: cfg.Service.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating service client: %w", err)
	}

	var client service.Client = httpClient
	if cfg.Service.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[string, service.Result](
			"results", cfg.Service.Cache.TTL, 2*cfg.Service.Cache.TTL)
		client = service.NewCachedClient(client, cache, cfg.Service.Cache.TTL)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("creating tracer: %w", err)
	}
	if provider.Enabled() {
		client = service.NewTracedClient(client, provider.Tracer())
	}

	log.Debug(log.CatClient, "Service client ready",
		"url", httpClient.URL(),
		"cache", cfg.Service.Cache.Enabled,
		"tracing", provider.Enabled())
	return client, provider.Shutdown, nil
}
