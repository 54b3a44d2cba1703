package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"edusign/internal/badge"
	"edusign/internal/llm"
	"edusign/internal/recommender"
	"edusign/internal/storage"
)

type app struct {
	kv     storage.Store
	badges *badge.Store
}

func (c *cli) openApp() (*app, error) {
	kv, err := storage.Open(c.cfg.StorageBackend, c.cfg.StoragePath, storage.RedisConfig{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
		Prefix:   c.cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	c.logger.Debug("Storage opened",
		zap.String("backend", c.cfg.StorageBackend),
		zap.String("path", c.cfg.StoragePath))

	return &app{
		kv: kv,
		badges: badge.NewStore(kv,
			badge.WithLogger(c.logger.Named("badge")),
			badge.WithMintDelay(c.cfg.MintDelay)),
	}, nil
}

func (a *app) Close() error {
	return storage.Close(a.kv)
}

// newAdvisor builds the advisor over the configured provider. When the
// provider cannot be built, every ask settles with an error entry instead.
func (c *cli) newAdvisor(badges recommender.BadgeLister) *recommender.Advisor {
	client, err := llm.NewFactory(c.cfg).CreateClient(string(c.cfg.LLMProvider), c.cfg.ChatModel)
	if err != nil {
		c.logger.Warn("Chat client unavailable", zap.Error(err))
		client = unavailableClient{err: err}
	}
	return recommender.NewAdvisor(badges, client,
		recommender.WithLogger(c.logger.Named("advisor")),
		recommender.WithTimeout(c.cfg.ChatTimeout))
}

type unavailableClient struct{ err error }

func (u unavailableClient) Generate(context.Context, []llm.Message) (llm.Response, error) {
	return llm.Response{}, u.err
}
