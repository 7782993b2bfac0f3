package internal

import "fmt"

// NotFoundError reports a missing input path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// AuthorizationError reports that the external licensing gate rejected
// processing. The pipeline fails fast before touching the archive.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	if e.Reason == "" {
		return "processing not authorized"
	}
	return fmt.Sprintf("processing not authorized: %s", e.Reason)
}

// CorruptArchiveError reports a structural decompression failure. Fatal to
// the whole session.
type CorruptArchiveError struct {
	Source string
	Err    error
}

func (e *CorruptArchiveError) Error() string {
	return fmt.Sprintf("corrupt archive [%s]: %v", e.Source, e.Err)
}

func (e *CorruptArchiveError) Unwrap() error {
	return e.Err
}

// UnknownFormatError reports a well-formed buffer containing zero
// recognizable sensor records, which signals a capture-format version
// mismatch.
type UnknownFormatError struct {
	Source string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown capture format [%s]: no recognizable sensor records", e.Source)
}

// MalformedRecordError reports one record whose payload does not match the
// sensor's fixed layout. Record-level, never fatal: the decoder skips the
// record and counts it.
type MalformedRecordError struct {
	Kind   Kind
	Index  int
	Length int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record %d: payload %d bytes, want %d",
		e.Kind, e.Index, e.Length, e.Kind.WirePayloadLen())
}

// FormatVersionError reports an unrecognized header in a serialized sample
// file. Fatal to that read.
type FormatVersionError struct {
	Path   string
	Detail string
}

func (e *FormatVersionError) Error() string {
	return fmt.Sprintf("unrecognized sample file format %s: %s", e.Path, e.Detail)
}

// TruncatedFileError reports a serialized sample file whose byte count does
// not match its declared sample and channel counts.
type TruncatedFileError struct {
	Path string
	Want int64
	Got  int64
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("truncated sample file %s: have %d bytes, want %d", e.Path, e.Got, e.Want)
}
