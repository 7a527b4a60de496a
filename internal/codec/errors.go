package codec

import "errors"

var (
	// ErrUnsupportedVersion means the vault file carries a format version
	// newer than this build understands. The file is left untouched; the
	// user needs a newer app, not a repair tool.
	ErrUnsupportedVersion = errors.New("vault file format version is not supported")

	// ErrMalformed means the bytes are not a finchest vault in any known
	// form. Decoding fails closed: no best-effort parse, no partial state.
	ErrMalformed = errors.New("not a compatible vault file")
)
