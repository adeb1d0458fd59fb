package errors

import "errors"

// Vault state errors indicate problems with the vault file itself.
var (
	// ErrVaultNotFound indicates the vault file does not exist yet.
	ErrVaultNotFound = errors.New("vault file not found")

	// ErrVaultExists indicates a vault file is already present and would be overwritten.
	ErrVaultExists = errors.New("vault file already exists")

	// ErrMalformedEnvelope indicates the vault file could not be parsed as an envelope.
	ErrMalformedEnvelope = errors.New("vault envelope is malformed")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrDecryptionFailed covers a wrong password, corrupted data, and tampered
	// data alike. Callers must not be able to tell these causes apart.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrUnsupportedVersion indicates an envelope declares a format version
	// this build does not know how to read.
	ErrUnsupportedVersion = errors.New("unsupported vault format version")

	// ErrUnsupportedAlgorithm indicates an envelope was sealed with an
	// encryption algorithm this build does not implement.
	ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")

	// ErrUnsupportedDigest indicates a key derivation digest identifier that
	// this build does not implement.
	ErrUnsupportedDigest = errors.New("unsupported key derivation digest")
)

// Policy errors are recoverable: the caller re-prompts instead of failing.
var (
	// ErrWeakPassword indicates the password fails the strength rules.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrPasswordMismatch indicates the confirmation entry did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
