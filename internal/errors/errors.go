package errors

import "errors"

// Charset errors indicate the effective character set cannot support the request.
var (
	// ErrUnknownSet indicates a character set id is not registered.
	ErrUnknownSet = errors.New("unknown character set")

	// ErrEmptyCharset indicates the resolved character set is empty after exclusions.
	ErrEmptyCharset = errors.New("character set resolved to empty")

	// ErrInsufficientUnique indicates avoid-repeat mode ran out of unique graphemes.
	ErrInsufficientUnique = errors.New("not enough unique characters for requested length")
)

// Pattern errors indicate a template cannot be compiled.
var (
	// ErrUnknownToken indicates a template character has no mapped class.
	ErrUnknownToken = errors.New("unknown pattern token")

	// ErrEmptyClass indicates a pattern class resolved to an empty set.
	ErrEmptyClass = errors.New("pattern class resolved to empty set")
)

// Wordlist errors indicate the diceware wordlist could not be obtained or trusted.
var (
	// ErrWordlistDownload indicates the download failed after all retry attempts.
	ErrWordlistDownload = errors.New("wordlist download failed")

	// ErrChecksumMismatch indicates the wordlist checksum did not match the pinned value.
	ErrChecksumMismatch = errors.New("wordlist checksum mismatch")

	// ErrWordlistCache indicates the wordlist cache could not be read or written.
	ErrWordlistCache = errors.New("wordlist cache error")
)

// Mutation errors indicate the mutation engine rejected its input.
var (
	// ErrEmptyInput indicates mutation was requested on an empty secret.
	ErrEmptyInput = errors.New("cannot mutate an empty secret")
)

// Clipboard errors indicate a secret could not be handed to the OS clipboard.
var (
	// ErrClipboardUnavailable indicates no clipboard backend is reachable.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// ErrClipboardEmpty indicates an empty value was submitted for copying.
	ErrClipboardEmpty = errors.New("refusing to copy an empty value to the clipboard")
)

// Request errors indicate a generation request failed validation before any
// randomness was drawn.
var (
	// ErrInvalidRequest indicates the generation request is malformed.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrInvalidSeparator indicates a separator value is neither a single grapheme nor "random".
	ErrInvalidSeparator = errors.New("separator must be a single character or \"random\"")
)
