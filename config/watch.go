// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Live reload of a config file.

package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/framegrace/texeltile/internal/errors"
)

// Watch calls fn whenever the file at path changes, until ctx is done. Each
// change is loaded like Load, so the user config and environment still apply
// under path; fn receives either a valid config or the error that rejected it,
// in which case the caller keeps its previous config. fn runs on the watcher
// goroutine.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	if !fileExists(path) {
		return errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
	}
	v, err := newViperInstance()
	if err != nil {
		return err
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Str("file", path).Logger()
	v.OnConfigChange(func(e fsnotify.Event) {
		if ctx.Err() != nil {
			return
		}
		logger.Debug().Str("op", e.Op.String()).Msg("config file changed")
		// Re-read from scratch: viper keeps its old values when a read fails.
		cfg, err := Load(ctx, path)
		if err != nil {
			logger.Warn().Err(err).Msg("config rejected, keeping previous")
		}
		fn(cfg, err)
	})
	v.WatchConfig()
	logger.Debug().Msg("watching config")

	<-ctx.Done()
	return nil
}
