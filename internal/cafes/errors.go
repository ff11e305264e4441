package cafes

import "fmt"

// DataFormatError reports a cafe file that cannot be decoded or does not
// match the expected schema.
type DataFormatError struct {
	Path   string // Path of the data file.
	Record int    // Record is the index of the offending entry, or -1 for the whole file.
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := fmt.Sprintf("invalid cafe data in %s", e.Path)
	if e.Record >= 0 {
		msg += fmt.Sprintf(" (record %d)", e.Record)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a data file that cannot be opened or read.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to read cafe data %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
