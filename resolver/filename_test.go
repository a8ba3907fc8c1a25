package resolver

import (
	"errors"
	"testing"

	"github.com/CognitoIQ/wsdlfetch/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildFilename(t *testing.T) {
	tests := []struct {
		url  string
		kind Kind
		want string
	}{
		{"https://svc/ep?wsdl=Billing", WSDL, "Billing.wsdl"},
		{"https://svc/ep?xsd=Types", XSD, "Types.xsd"},
		{"https://svc/ep?xsd=1", XSD, "1.xsd"},
		{"https://svc/ep?wsdl=Billing&xsd=Types", XSD, "Types.xsd"},
		{"http://host:8080/a/b?wsdl=Port%20Types", WSDL, "Port Types.wsdl"},
	}
	for _, tt := range tests {
		have, err := ChildFilename(tt.url, tt.kind)
		if assert.NoError(t, err, tt.url) {
			assert.Equal(t, tt.want, have, tt.url)
		}
	}
}

func TestChildFilenameMalformed(t *testing.T) {
	tests := []struct {
		url  string
		kind Kind
	}{
		{"https://svc/ep?wsdl=Billing", XSD},
		{"https://svc/ep?xsd=Types", WSDL},
		{"https://svc/ep?wsdl", WSDL},
		{"https://svc/ep?wsdl=", WSDL},
		{"https://svc/types.xsd", XSD},
		{"https://svc/ep?xsd=../../etc/passwd", XSD},
		{"https://svc/ep?xsd=a%2Fb", XSD},
		{"https://svc/ep?xsd=..", XSD},
		{"https://svc/ep?xsd=a%5Cb", XSD},
		{"http://[::1", WSDL},
	}
	for _, tt := range tests {
		_, err := ChildFilename(tt.url, tt.kind)
		var malformed *MalformedImportURLError
		if assert.True(t, errors.As(err, &malformed), "%s: expected *MalformedImportURLError, got %v", tt.url, err) {
			assert.Equal(t, tt.url, malformed.URL)
			assert.Equal(t, tt.kind.String(), malformed.Param)
		}
	}
}

func TestRootFilename(t *testing.T) {
	named, err := xmltree.Parse([]byte(`<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/" name="BillingService"/>`))
	require.NoError(t, err)
	unnamed, err := xmltree.Parse([]byte(`<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"/>`))
	require.NoError(t, err)

	tests := []struct {
		url  string
		root *xmltree.Element
		want string
	}{
		{"https://host/a/b/service?wsdl", unnamed, "a-b-service.wsdl"},
		{"https://host/a/b/service?wsdl", named, "BillingService.wsdl"},
		{"https://other/x?wsdl", named, "BillingService.wsdl"},
		{"https://host/service/?wsdl", unnamed, "service.wsdl"},
		{"https://host/contracts/billing.wsdl", unnamed, "contracts-billing.wsdl"},
		{"https://host:8443?wsdl", unnamed, "host-8443.wsdl"},
	}
	for _, tt := range tests {
		have, err := RootFilename(tt.url, tt.root, "wsdl")
		if assert.NoError(t, err, tt.url) {
			assert.Equal(t, tt.want, have, tt.url)
		}
	}

	// The name is only looked up under the configured prefix.
	have, err := RootFilename("https://host/a/b/service?wsdl", named, "w")
	require.NoError(t, err)
	assert.Equal(t, "a-b-service.wsdl", have)

	_, err = RootFilename("file.wsdl?wsdl", unnamed, "wsdl")
	assert.NoError(t, err)
	_, err = RootFilename("?wsdl", unnamed, "wsdl")
	var malformed *MalformedImportURLError
	assert.True(t, errors.As(err, &malformed), "expected *MalformedImportURLError, got %v", err)
}

func TestResolveReference(t *testing.T) {
	tests := []struct {
		base, location, want string
	}{
		{"https://svc/ep?wsdl", "https://other/ep?xsd=A", "https://other/ep?xsd=A"},
		{"https://svc/ep/service?wsdl", "?xsd=Rel", "https://svc/ep/service?xsd=Rel"},
		{"https://svc/ep/service?wsdl", "types?xsd=T", "https://svc/ep/types?xsd=T"},
		{"https://svc/ep/service?wsdl", "/root?xsd=T", "https://svc/root?xsd=T"},
	}
	for _, tt := range tests {
		have, err := resolveReference(tt.base, tt.location)
		if assert.NoError(t, err) {
			assert.Equal(t, tt.want, have)
		}
	}
}
