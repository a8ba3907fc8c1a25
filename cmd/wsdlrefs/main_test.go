package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rootDoc = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
    xmlns:xsd="http://www.w3.org/2001/XMLSchema" name="Echo">
  <wsdl:import namespace="urn:ports" location="Ports.wsdl"/>
  <wsdl:types>
    <xsd:schema>
      <xsd:import namespace="urn:types" schemaLocation="Types.xsd"/>
      <xsd:import namespace="http://www.w3.org/XML/1998/namespace"/>
    </xsd:schema>
  </wsdl:types>
</wsdl:definitions>`
	portsDoc = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/">
  <wsdl:import location="https://svc.example.com/echo?wsdl=Extra"/>
</wsdl:definitions>`
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

func TestList(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Echo.wsdl":  rootDoc,
		"Ports.wsdl": portsDoc,
	})
	var buf bytes.Buffer
	files := []string{filepath.Join(dir, "Echo.wsdl"), filepath.Join(dir, "Ports.wsdl")}
	dangling, err := list(&buf, files, options{wsdlPrefix: "wsdl", xsdPrefix: "xsd"})
	require.NoError(t, err)
	assert.Equal(t, 2, dangling)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "LOCATION")
	assert.Regexp(t, `wsdl\s+urn:ports\s+Ports.wsdl\s+ok$`, lines[1])
	assert.Regexp(t, `xsd\s+urn:types\s+Types.xsd\s+missing$`, lines[2])
	assert.Regexp(t, `xsd\s+http://www.w3.org/XML/1998/namespace\s+-\s+-$`, lines[3])
	assert.Regexp(t, `wsdl\s+-\s+https://svc.example.com/echo\?wsdl=Extra\s+remote$`, lines[4])
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Echo.wsdl":  rootDoc,
		"Ports.wsdl": `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"/>`,
		"Types.xsd":  `<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema"/>`,
	})
	run := func(args ...string) error {
		cmd := newCommand()
		cmd.SetArgs(args)
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		return cmd.Execute()
	}
	assert.NoError(t, run("--check", filepath.Join(dir, "Echo.wsdl")))

	require.NoError(t, os.Remove(filepath.Join(dir, "Types.xsd")))
	assert.Error(t, run("--check", filepath.Join(dir, "Echo.wsdl")))
	assert.NoError(t, run(filepath.Join(dir, "Echo.wsdl")))
	assert.Error(t, run())
}

func TestListParseError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.wsdl": "<definitions>"})
	_, err := list(new(bytes.Buffer), []string{filepath.Join(dir, "bad.wsdl")}, options{})
	assert.ErrorContains(t, err, "bad.wsdl")
}
