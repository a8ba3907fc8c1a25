package resolver

import (
	"github.com/rs/zerolog"

	"github.com/CognitoIQ/wsdlfetch/source"
)

const (
	// DefaultWSDLPrefix is the prefix most WSDL documents bind to the
	// WSDL namespace.
	DefaultWSDLPrefix = "wsdl"
	// DefaultXSDPrefix is the prefix most WSDL documents bind to the
	// XML Schema namespace.
	DefaultXSDPrefix = "xsd"
	// DefaultIndentWidth is the number of spaces per level of nesting
	// in written documents.
	DefaultIndentWidth = 4
	// DefaultConcurrency is the number of documents fetched at once.
	DefaultConcurrency = 4
)

// A Config contains parameters for resolving a document's imports.
// Users may modify the behavior of the resolver by using a Config's
// Option method to change these parameters.
type Config struct {
	wsdlPrefix  string
	xsdPrefix   string
	indentWidth int
	concurrency int
	source      source.Source
	logger      zerolog.Logger
}

// New returns a Config with DefaultOptions applied, followed by opts.
func New(opts ...Option) *Config {
	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(opts...)
	return &cfg
}

// Option applies the provided Options to a Config. The return value
// of Option can be used to revert the effects of the final parameter.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// An Option modifies resolver parameters. The return value of an
// Option can be used to undo its effect.
type Option func(*Config) Option

// DefaultOptions are the default options for resolving imports.
var DefaultOptions = []Option{
	WSDLPrefix(DefaultWSDLPrefix),
	XSDPrefix(DefaultXSDPrefix),
	IndentWidth(DefaultIndentWidth),
	Concurrency(DefaultConcurrency),
	FetchFrom(source.NewHTTP(source.DefaultTimeout, source.DefaultUserAgent)),
	LogOutput(zerolog.Nop()),
}

// WSDLPrefix sets the namespace prefix the source documents bind to the
// WSDL namespace. Only <prefix:import> elements are treated as WSDL
// imports; the prefix is not discovered from namespace declarations.
func WSDLPrefix(prefix string) Option {
	return func(cfg *Config) Option {
		prev := cfg.wsdlPrefix
		cfg.wsdlPrefix = prefix
		return WSDLPrefix(prev)
	}
}

// XSDPrefix sets the namespace prefix the source documents bind to the
// XML Schema namespace.
func XSDPrefix(prefix string) Option {
	return func(cfg *Config) Option {
		prev := cfg.xsdPrefix
		cfg.xsdPrefix = prefix
		return XSDPrefix(prev)
	}
}

// IndentWidth sets the number of spaces used per level of nesting when
// writing documents.
func IndentWidth(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(cfg *Config) Option {
		prev := cfg.indentWidth
		cfg.indentWidth = n
		return IndentWidth(prev)
	}
}

// Concurrency sets how many imports of a single document may be fetched
// at the same time, and how many fetches may be in flight overall. A
// value of 1 fetches one document at a time, depth-first.
func Concurrency(n int) Option {
	if n < 1 {
		n = 1
	}
	return func(cfg *Config) Option {
		prev := cfg.concurrency
		cfg.concurrency = n
		return Concurrency(prev)
	}
}

// FetchFrom sets the Source documents are retrieved from.
func FetchFrom(src source.Source) Option {
	return func(cfg *Config) Option {
		prev := cfg.source
		cfg.source = src
		return FetchFrom(prev)
	}
}

// LogOutput sets the destination for log messages generated while
// resolving imports.
func LogOutput(logger zerolog.Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = logger
		return LogOutput(prev)
	}
}
