package romctrl

import "log/slog"

// AlertHandler receives fatal alert events. It is called once per alert.
type AlertHandler func()

type config struct {
	logger *slog.Logger
	alert  AlertHandler
	key    Key
	nonce  Nonce
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.DiscardHandler),
		alert:  func() {},
	}
}

// Option is a functional option for configuring the Controller.
type Option func(*config)

// WithLogger sets the logger used for warnings about ECC mismatches, digest mismatches, and unhandled register
// accesses. By default nothing is logged.
//
// Example:
//
//	ctrl, err := romctrl.New(memory, romctrl.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAlert sets the handler for the fatal alert line.
//
// Example:
//
//	ctrl, err := romctrl.New(memory, romctrl.WithAlert(func() { irq.Raise() }))
func WithAlert(handler AlertHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.alert = handler
		}
	}
}

// WithKey sets the scrambling key. The default is the all-zero key.
func WithKey(key Key) Option {
	return func(c *config) {
		c.key = key
	}
}

// WithNonce sets the scrambling nonce. The default is zero.
func WithNonce(nonce Nonce) Option {
	return func(c *config) {
		c.nonce = nonce
	}
}
