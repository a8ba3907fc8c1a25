// Command wsdlrefs lists the imports in local WSDL and XML Schema
// files, such as those written by wsdlfetch.
//
// With --check, it exits with a non-zero status if any import location
// does not name a file in the same directory as the importing file.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CognitoIQ/wsdlfetch/resolver"
	"github.com/CognitoIQ/wsdlfetch/wsdl"
	"github.com/CognitoIQ/wsdlfetch/xmltree"
	"github.com/CognitoIQ/wsdlfetch/xsd"
)

type options struct {
	wsdlPrefix, xsdPrefix string
	check                 bool
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "wsdlrefs [flags] file ...",
		Short: "List the imports of local WSDL and XML Schema files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			dangling, err := list(cmd.OutOrStdout(), args, opts)
			if err != nil {
				return err
			}
			if opts.check && dangling > 0 {
				return fmt.Errorf("%d import(s) do not refer to local files", dangling)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.wsdlPrefix, "wsdl-prefix", resolver.DefaultWSDLPrefix, "namespace prefix of WSDL elements")
	cmd.Flags().StringVar(&opts.xsdPrefix, "xsd-prefix", resolver.DefaultXSDPrefix, "namespace prefix of XML Schema elements")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail if any import does not refer to a local file")
	return cmd
}

// list writes one line per import found in files, and returns the
// number of imports whose location is not a file beside the importing
// file. Imports without a location are listed but not counted.
func list(w io.Writer, files []string, opts options) (dangling int, err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tKIND\tNAMESPACE\tLOCATION\tSTATUS")
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return dangling, err
		}
		root, err := xmltree.Parse(data)
		if err != nil {
			return dangling, fmt.Errorf("parse %s: %w", file, err)
		}
		refs := [][]xsd.Ref{
			wsdl.Imports(root, opts.wsdlPrefix),
			xsd.Imports(root, opts.xsdPrefix),
		}
		for i, kind := range []resolver.Kind{resolver.WSDL, resolver.XSD} {
			for _, ref := range refs[i] {
				status := localStatus(file, ref.Location)
				if status != "ok" && status != "-" {
					dangling++
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", file, kind, orDash(ref.Namespace), orDash(ref.Location), status)
			}
		}
	}
	return dangling, tw.Flush()
}

func localStatus(file, location string) string {
	switch {
	case location == "":
		return "-"
	case strings.Contains(location, "://"):
		return "remote"
	case strings.ContainsAny(location, `/\`):
		return "not flat"
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(file), location)); err != nil {
		return "missing"
	}
	return "ok"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
