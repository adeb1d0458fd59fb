package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

// Known envelope format versions.
const (
	// VersionLegacy envelopes carry no kdfParams; derivation uses the frozen
	// LegacyParams set. Read-only: encoding never produces this shape.
	VersionLegacy = 1

	// VersionCurrent envelopes persist their kdfParams explicitly.
	VersionCurrent = 2
)

// AlgorithmAESGCM identifies the AEAD construction used for all new vaults.
const AlgorithmAESGCM = "aes-256-gcm"

// Secret is one named credential slot.
type Secret struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SecretBundle is the plaintext payload of a vault: an ordered set of named
// credentials plus a creation timestamp. It exists only transiently in memory
// during save, view, and rotate, and is never persisted unencrypted.
type SecretBundle struct {
	Secrets   []Secret  `json:"secrets"`
	CreatedAt time.Time `json:"createdAt"`
}

// Get returns the value of a named slot.
func (b SecretBundle) Get(name string) (string, bool) {
	for _, s := range b.Secrets {
		if s.Name == name {
			return s.Value, true
		}
	}
	return "", false
}

// Envelope is the decoded form of the persisted vault record.
type Envelope struct {
	Ciphertext []byte
	Nonce      []byte
	AuthTag    []byte
	Salt       []byte

	// KDFParams is present for VersionCurrent envelopes and nil for legacy ones.
	KDFParams *Params

	Algorithm string
	Version   int
}

// envelopeRecord is the on-disk JSON shape. Binary fields are hex-encoded.
type envelopeRecord struct {
	Ciphertext string  `json:"ciphertext"`
	Nonce      string  `json:"nonce"`
	AuthTag    string  `json:"authTag"`
	Salt       string  `json:"salt"`
	KDFParams  *Params `json:"kdfParams,omitempty"`
	Algorithm  string  `json:"algorithmId"`
	Version    int     `json:"formatVersion"`
}

// EncodeBundle serializes the plaintext bundle for encryption.
func EncodeBundle(bundle SecretBundle) ([]byte, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("encode secret bundle: %w", err)
	}
	return data, nil
}

// DecodeBundle parses a decrypted bundle payload.
func DecodeBundle(data []byte) (SecretBundle, error) {
	var bundle SecretBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return bundle, fmt.Errorf("decode secret bundle: %w", err)
	}
	return bundle, nil
}

// EncodeEnvelope serializes an envelope in the current format. Only the
// current shape is ever written; legacy envelopes are upgraded solely by
// explicit re-encryption (rotation), never by re-encoding in place.
func EncodeEnvelope(env Envelope) ([]byte, error) {
	if env.Version != VersionCurrent {
		return nil, fmt.Errorf("%w: encoding only writes version %d, got %d", lberrors.ErrUnsupportedVersion, VersionCurrent, env.Version)
	}
	if env.Algorithm != AlgorithmAESGCM {
		return nil, fmt.Errorf("%w: %q", lberrors.ErrUnsupportedAlgorithm, env.Algorithm)
	}
	if env.KDFParams == nil {
		return nil, fmt.Errorf("%w: version %d requires kdfParams", lberrors.ErrMalformedEnvelope, VersionCurrent)
	}
	if len(env.Salt) != CurrentSaltLength {
		return nil, fmt.Errorf("%w: expected %d-byte salt, got %d", lberrors.ErrMalformedEnvelope, CurrentSaltLength, len(env.Salt))
	}
	if len(env.Nonce) != NonceLength || len(env.AuthTag) != TagLength {
		return nil, fmt.Errorf("%w: bad nonce or tag width", lberrors.ErrMalformedEnvelope)
	}

	record := envelopeRecord{
		Ciphertext: hex.EncodeToString(env.Ciphertext),
		Nonce:      hex.EncodeToString(env.Nonce),
		AuthTag:    hex.EncodeToString(env.AuthTag),
		Salt:       hex.EncodeToString(env.Salt),
		KDFParams:  env.KDFParams,
		Algorithm:  env.Algorithm,
		Version:    env.Version,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope parses a persisted envelope, dispatching on its declared
// format version. Unknown versions are rejected, never guessed at.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var record envelopeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", lberrors.ErrMalformedEnvelope, err)
	}

	switch record.Version {
	case VersionLegacy:
		return decodeLegacy(record)
	case VersionCurrent:
		return decodeCurrent(record)
	default:
		return Envelope{}, fmt.Errorf("%w: %d", lberrors.ErrUnsupportedVersion, record.Version)
	}
}

func decodeLegacy(record envelopeRecord) (Envelope, error) {
	if record.KDFParams != nil {
		return Envelope{}, fmt.Errorf("%w: version %d must not carry kdfParams", lberrors.ErrMalformedEnvelope, VersionLegacy)
	}
	env, err := decodeCommon(record)
	if err != nil {
		return Envelope{}, err
	}
	if len(env.Salt) != LegacySaltLength {
		return Envelope{}, fmt.Errorf("%w: expected %d-byte salt, got %d", lberrors.ErrMalformedEnvelope, LegacySaltLength, len(env.Salt))
	}
	return env, nil
}

func decodeCurrent(record envelopeRecord) (Envelope, error) {
	if record.KDFParams == nil {
		return Envelope{}, fmt.Errorf("%w: version %d requires kdfParams", lberrors.ErrMalformedEnvelope, VersionCurrent)
	}
	if record.KDFParams.Iterations <= 0 || record.KDFParams.KeyLength <= 0 || record.KDFParams.Digest == "" {
		return Envelope{}, fmt.Errorf("%w: incomplete kdfParams", lberrors.ErrMalformedEnvelope)
	}
	env, err := decodeCommon(record)
	if err != nil {
		return Envelope{}, err
	}
	if len(env.Salt) != CurrentSaltLength {
		return Envelope{}, fmt.Errorf("%w: expected %d-byte salt, got %d", lberrors.ErrMalformedEnvelope, CurrentSaltLength, len(env.Salt))
	}
	return env, nil
}

func decodeCommon(record envelopeRecord) (Envelope, error) {
	if record.Algorithm != AlgorithmAESGCM {
		return Envelope{}, fmt.Errorf("%w: %q", lberrors.ErrUnsupportedAlgorithm, record.Algorithm)
	}

	ciphertext, err := decodeHexField("ciphertext", record.Ciphertext)
	if err != nil {
		return Envelope{}, err
	}
	nonce, err := decodeHexField("nonce", record.Nonce)
	if err != nil {
		return Envelope{}, err
	}
	tag, err := decodeHexField("authTag", record.AuthTag)
	if err != nil {
		return Envelope{}, err
	}
	salt, err := decodeHexField("salt", record.Salt)
	if err != nil {
		return Envelope{}, err
	}

	if len(nonce) != NonceLength {
		return Envelope{}, fmt.Errorf("%w: expected %d-byte nonce, got %d", lberrors.ErrMalformedEnvelope, NonceLength, len(nonce))
	}
	if len(tag) != TagLength {
		return Envelope{}, fmt.Errorf("%w: expected %d-byte auth tag, got %d", lberrors.ErrMalformedEnvelope, TagLength, len(tag))
	}

	return Envelope{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		AuthTag:    tag,
		Salt:       salt,
		KDFParams:  record.KDFParams,
		Algorithm:  record.Algorithm,
		Version:    record.Version,
	}, nil
}

func decodeHexField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: missing %s", lberrors.ErrMalformedEnvelope, name)
	}
	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", lberrors.ErrMalformedEnvelope, name)
	}
	return data, nil
}

// ParamsForEnvelope resolves which derivation parameters open a given
// envelope. This is the backward-compatibility contract: version 2 uses the
// params stored in the envelope — never the process's current defaults — and
// version 1 uses the frozen legacy set.
func ParamsForEnvelope(env Envelope) (Params, error) {
	switch env.Version {
	case VersionLegacy:
		return LegacyParams(), nil
	case VersionCurrent:
		if env.KDFParams == nil {
			return Params{}, fmt.Errorf("%w: version %d requires kdfParams", lberrors.ErrMalformedEnvelope, VersionCurrent)
		}
		return *env.KDFParams, nil
	default:
		return Params{}, fmt.Errorf("%w: %d", lberrors.ErrUnsupportedVersion, env.Version)
	}
}
