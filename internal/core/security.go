// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/argon2"
)

var errMalformedHash = errors.New("malformed password hash")

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// currentParams is what HashPassword encodes with. Stored hashes made with
// anything else are upgraded on the next successful signin.
var currentParams = argonParams{
	memory:  64 * 1024,
	time:    1,
	threads: 4,
	keyLen:  32,
}

const saltLength = 16

// PasswordCheck is the outcome of CheckPassword. Upgrade is non-empty when
// the password matched a hash made with outdated parameters.
type PasswordCheck struct {
	Valid   bool
	Upgrade string
}

// absentHash is verified against when the account does not exist so that
// unknown emails cost the same as wrong passwords.
var absentHash = mustHash("tenanthub-absent-account")

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("security: hash placeholder: %v", err))
	}
	return h
}

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return currentParams.encode(salt, currentParams.derive(password, salt)), nil
}

// CheckPassword compares password with encodedHash in constant time. An
// empty encodedHash burns one derivation and reports a mismatch.
func CheckPassword(password, encodedHash string) (PasswordCheck, error) {
	if encodedHash == "" {
		_, _, _ = verify(password, absentHash)
		return PasswordCheck{}, nil
	}

	params, ok, err := verify(password, encodedHash)
	if err != nil || !ok {
		return PasswordCheck{}, err
	}

	check := PasswordCheck{Valid: true}
	if params != currentParams {
		// a failed upgrade still lets the signin through
		if upgraded, hashErr := HashPassword(password); hashErr == nil {
			check.Upgrade = upgraded
		}
	}
	return check, nil
}

func verify(password, encodedHash string) (argonParams, bool, error) {
	params, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return argonParams{}, false, err
	}

	got := params.derive(password, salt)
	return params, subtle.ConstantTimeCompare(want, got) == 1, nil
}

func (p argonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

func (p argonParams) encode(salt, key []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory,
		p.time,
		p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(encodedHash string) (argonParams, []byte, []byte, error) {
	var params argonParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, fmt.Errorf("%w: version %q", errMalformedHash, parts[2])
	}

	if _, err := fmt.Sscanf(
		parts[3], "m=%d,t=%d,p=%d",
		&params.memory, &params.time, &params.threads,
	); err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", errMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: salt: %w", errMalformedHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: key: %w", errMalformedHash, err)
	}

	//nolint:gosec // G115: argon2id keys are 32 bytes
	params.keyLen = uint32(len(key))

	return params, salt, key, nil
}

// GenerateNumericCode returns a uniformly random decimal code of the given
// length, zero padded.
func GenerateNumericCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("generate code: %w", ErrInvalidInput)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}

// HashToken is the hex SHA-256 of a short-lived secret such as an OTP.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
