// Package vault implements the credential vault core: password policy,
// versioned key derivation, authenticated encryption, the on-disk envelope
// codec, and the hardened file store.
//
// # On-disk format
//
// The vault is a single JSON envelope:
//
//	{
//	  "ciphertext": "<hex>",
//	  "nonce": "<hex, 12 bytes>",
//	  "authTag": "<hex, 16 bytes>",
//	  "salt": "<hex, 16 or 32 bytes>",
//	  "kdfParams": {"iterations": 600000, "digest": "sha512", "keyLength": 32},
//	  "algorithmId": "aes-256-gcm",
//	  "formatVersion": 2
//	}
//
// Version 1 envelopes omit kdfParams and imply a frozen legacy parameter set
// (100k iterations of PBKDF2-SHA256, 16-byte salt). Version 2 envelopes carry
// their parameters explicitly, which is what lets the current defaults be
// strengthened over time without breaking existing vaults: the open path
// always derives with the envelope's own parameters, never the process
// defaults. Unknown versions are rejected outright.
//
// Writes are atomic (temp file + rename) and restricted to owner read/write.
// Rotation additionally holds an advisory file lock across its whole
// read-decrypt-backup-reencrypt-write span. Both are deliberate hardenings
// over the tool this replaces, which offered no such guarantees.
package vault
