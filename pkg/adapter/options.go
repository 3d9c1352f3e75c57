package adapter

import (
	"go.uber.org/zap"
)

type Option func(*KeypairAdapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *KeypairAdapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithMetadata(name, url, icon string) Option {
	return func(a *KeypairAdapter) {
		a.name = name
		a.url = url
		a.icon = icon
	}
}
