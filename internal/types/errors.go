// =============================================================================
// ublkit - Error Taxonomy
// =============================================================================
//
// Four error classes cover every failure mode:
//
//   ConfigError            - invalid or missing configuration; fatal, aborts
//                            before any processing starts.
//   ParseError             - malformed XML; recorded per file, never aborts a
//                            batch.
//   UnsupportedFormatError - output format outside {json, csv, xlsx}; fatal
//                            for the call.
//   IOError                - unreadable source or unwritable destination;
//                            recorded per file in batch mode, surfaced through
//                            the result in single-file mode.
//
// All classes wrap an underlying cause and work with errors.Is / errors.As.
//
// =============================================================================

package types

import "fmt"

// ConfigError reports an invalid or missing configuration value.
type ConfigError struct {
	// Key is the configuration key at fault, when known.
	Key string

	// Err is the underlying cause or description.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports malformed XML in one source file.
type ParseError struct {
	// Path is the source file, when known.
	Path string

	// Err is the decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("XML syntax error in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("XML syntax error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a requested output format that is not one of
// the supported formats.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format: %q (must be json, csv or xlsx)", e.Format)
}

// IOError reports a failed read of a source file or write of a destination.
type IOError struct {
	// Op is "read" or "write".
	Op string

	// Path is the file at fault.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
