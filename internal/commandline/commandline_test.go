package commandline

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootDoc = `<?xml version="1.0"?>
<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
    xmlns:xsd="http://www.w3.org/2001/XMLSchema" name="Echo">
  <wsdl:import location="%[1]s/echo?wsdl=Ports"/>
  <wsdl:types>
    <xsd:schema>
      <xsd:import schemaLocation="%[1]s/echo?xsd=Types"/>
    </xsd:schema>
  </wsdl:types>
</wsdl:definitions>`

const portsDoc = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/">
  <wsdl:portType name="EchoPort"/>
</wsdl:definitions>`

const typesDoc = `<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="Message" type="xsd:string"/>
</xsd:schema>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	docs := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := docs[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	docs["/echo?wsdl"] = fmt.Sprintf(rootDoc, srv.URL)
	docs["/echo?wsdl=Ports"] = portsDoc
	docs["/echo?xsd=Types"] = typesDoc
	return srv
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	srv := newServer(t)
	dir := filepath.Join(t.TempDir(), "contracts")

	_, logs, err := execute(t, srv.URL+"/echo?wsdl", "wsdl", "xsd", dir, "--json")
	require.NoError(t, err)

	for _, name := range []string{"Echo.wsdl", "Ports.wsdl", "Types.xsd"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	root, err := os.ReadFile(filepath.Join(dir, "Echo.wsdl"))
	require.NoError(t, err)
	assert.Contains(t, string(root), `location="Ports.wsdl"`)
	assert.Contains(t, string(root), `schemaLocation="Types.xsd"`)
	assert.NotContains(t, string(root), srv.URL)
	assert.Contains(t, string(root), "\n    <wsdl:import")

	assert.Contains(t, logs, `"message":"Writing"`)
	assert.Contains(t, logs, `"message":"Done"`)
}

func TestRunDefaultOutputDir(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, _, err = execute(t, srv.URL+"/echo?wsdl", "wsdl", "xsd")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Echo.wsdl"))
}

func TestRunConfigFile(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	cfgFile := filepath.Join(t.TempDir(), "wsdlfetch.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("indent: 2\nlog:\n  json: true\n"), 0644))

	_, logs, err := execute(t, srv.URL+"/echo?wsdl", "wsdl", "xsd", dir, "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, logs, `"message":"Done"`)

	root, err := os.ReadFile(filepath.Join(dir, "Echo.wsdl"))
	require.NoError(t, err)
	assert.Contains(t, string(root), "\n  <wsdl:import")

	// Flags take precedence over the file.
	dir = t.TempDir()
	_, _, err = execute(t, srv.URL+"/echo?wsdl", "wsdl", "xsd", dir, "--config", cfgFile, "--indent", "3")
	require.NoError(t, err)
	root, err = os.ReadFile(filepath.Join(dir, "Echo.wsdl"))
	require.NoError(t, err)
	assert.Contains(t, string(root), "\n   <wsdl:import")
}

func TestRunFetchError(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	stdout, stderr, err := execute(t, srv.URL+"/missing?wsdl", "wsdl", "xsd", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, stderr, "Error:")
	assert.NotContains(t, stdout+stderr, "Usage:")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArgs(t *testing.T) {
	tests := [][]string{
		{},
		{"https://svc.example.com/echo?wsdl"},
		{"https://svc.example.com/echo?wsdl", "wsdl"},
		{"https://svc.example.com/echo?wsdl", "wsdl", "xsd", "out", "extra"},
	}
	for _, args := range tests {
		stdout, stderr, err := execute(t, args...)
		assert.Error(t, err, strings.Join(args, " "))
		assert.Contains(t, stderr, "Error:", strings.Join(args, " "))
		assert.Contains(t, stdout+stderr, "Usage:", strings.Join(args, " "))
	}
}

func TestRunRelativeURL(t *testing.T) {
	_, _, err := execute(t, "echo?wsdl", "wsdl", "xsd", t.TempDir())
	assert.ErrorContains(t, err, "not an absolute URL")
}
