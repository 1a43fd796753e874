package document

import "fmt"

// UnsupportedFormatError indicates the file extension maps to no known extractor.
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q for %s: only .pdf and .docx are supported", e.Ext, e.Filename)
}

// LegacyFormatError indicates a legacy .doc file, which is a known, named
// limitation distinct from the generic unsupported case.
type LegacyFormatError struct {
	Filename string
}

func (e *LegacyFormatError) Error() string {
	return fmt.Sprintf("legacy .doc format is not supported for %s: convert the file to .docx", e.Filename)
}

// ParseError indicates the document bytes could not be parsed by the
// format's reader.
type ParseError struct {
	Filename string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Filename, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
