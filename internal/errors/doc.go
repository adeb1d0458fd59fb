// Package errors defines sentinel errors for lockbox operations.
//
// Errors fall into four classes with different handling policies:
//
//   - Policy errors (ErrWeakPassword, ErrPasswordMismatch) are recovered by
//     re-prompting and never terminate a command.
//   - ErrVaultNotFound is surfaced with an actionable hint.
//   - ErrDecryptionFailed is deliberately opaque: wrong password, corruption,
//     and tampering are indistinguishable to avoid giving an attacker an
//     oracle.
//   - Everything else is a storage or format fault and is reported with its
//     underlying cause.
//
// Use errors.Is to match against these sentinels:
//
//	if errors.Is(err, lberrors.ErrVaultNotFound) {
//	    // suggest running `lockbox save`
//	}
package errors
