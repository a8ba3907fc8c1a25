package resolver

import "fmt"

// A MalformedImportURLError is returned when a file name cannot be
// derived from a document's URL. Imported documents must carry their
// name in a wsdl= or xsd= query parameter.
type MalformedImportURLError struct {
	URL string
	// Param is the query parameter that was expected to hold the
	// document name, if any.
	Param string
	Err   error
}

func (e *MalformedImportURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed import URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("import URL %q has no %s= query parameter naming a file", e.URL, e.Param)
}

func (e *MalformedImportURLError) Unwrap() error { return e.Err }

// A FilenameConflictError is returned when two different URLs would be
// written to the same file.
type FilenameConflictError struct {
	Filename      string
	URL, Existing string
}

func (e *FilenameConflictError) Error() string {
	return fmt.Sprintf("%s and %s would both be written to %s", e.Existing, e.URL, e.Filename)
}

// A WriteError is returned when the output directory cannot be created
// or a document cannot be written to it.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
