// Package commandline implements the wsdlfetch command.
package commandline // import "github.com/CognitoIQ/wsdlfetch/internal/commandline"

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CognitoIQ/wsdlfetch/internal/config"
	"github.com/CognitoIQ/wsdlfetch/internal/logging"
	"github.com/CognitoIQ/wsdlfetch/resolver"
	"github.com/CognitoIQ/wsdlfetch/source"
)

// flag name -> setting name
var bindings = map[string]string{
	"indent":      "indent",
	"timeout":     "timeout",
	"concurrency": "concurrency",
	"user-agent":  "user_agent",
	"debug":       "log.debug",
	"json":        "log.json",
}

// New returns the root wsdlfetch command. Each call returns an
// independent command with its own settings.
func New() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "wsdlfetch <wsdl-url> <wsdl-namespace-prefix> <xsd-namespace-prefix> [output-dir]",
		Short: "Download a WSDL document and everything it imports",
		Long: `wsdlfetch downloads the WSDL document at wsdl-url, together with every
WSDL and XML Schema document it imports directly or transitively, and
writes them to output-dir (default ".") with each import rewritten to
refer to the local copy.

Imports are recognized by the namespace prefixes the documents use for
WSDL and XML Schema elements, commonly "wsdl" and "xsd". Imported
documents are named after the wsdl= or xsd= query parameter of their URL.

Settings may also be given in a wsdlfetch.yaml file, in the working
directory or in $HOME/.config/wsdlfetch, or in WSDLFETCH_* environment
variables.`,
		Example: "  wsdlfetch 'https://svc.example.com/billing?wsdl' wsdl xsd ./contracts",
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd, cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is wsdlfetch.yaml in . or $HOME/.config/wsdlfetch)")
	flags.Int("indent", resolver.DefaultIndentWidth, "number of spaces per level of nesting in written documents")
	flags.Duration("timeout", source.DefaultTimeout, "timeout for each document fetch")
	flags.Int("concurrency", resolver.DefaultConcurrency, "maximum number of documents fetched at once")
	flags.String("user-agent", source.DefaultUserAgent, "User-Agent header sent with each request")
	flags.Bool("debug", false, "use debug level logging")
	flags.Bool("json", false, "write logs as JSON instead of text")
	for flag, key := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, args []string) error {
	rootURL, wsdlPrefix, xsdPrefix := args[0], args[1], args[2]
	outputDir := "."
	if len(args) > 3 {
		outputDir = args[3]
	}
	if u, err := url.Parse(rootURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("%q is not an absolute URL", rootURL)
	}

	logger := logging.Setup(logging.Options{
		Debug: cfg.Log.Debug,
		JSON:  cfg.Log.JSON,
		Out:   cmd.ErrOrStderr(),
	})
	r := resolver.New(cfg.Options()...)
	r.Option(
		resolver.WSDLPrefix(wsdlPrefix),
		resolver.XSDPrefix(xsdPrefix),
		resolver.LogOutput(logger),
	)

	result, err := r.Process(cmd.Context(), rootURL, outputDir)
	if err != nil {
		return err
	}
	logger.Info().
		Str("file", result.Root.Path).
		Int("documents", len(result.Files)).
		Msg("Done")
	return nil
}
