package generate

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

type Option func(*options)

// WithLogger routes generation debug output to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
