package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// resetTokenLength is the byte length of a password reset token
const resetTokenLength = 32

// GenerateSessionToken returns an opaque handle correlating the two steps
// of a login. Unguessable, unique per login attempt.
func GenerateSessionToken() string {
	return uuid.New().String()
}

// GenerateOTPCode returns a uniformly random 6-digit code in [100000, 999999].
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", 100000+n.Int64()), nil
}

// GenerateResetToken creates a cryptographically secure random token
func GenerateResetToken() (string, error) {
	bytes := make([]byte, resetTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// accessTokenPrefix marks the bearer tokens handed out after a completed
// login. The frontend treats them as opaque.
const accessTokenPrefix = "session-token-"

// FormatAccessToken builds the bearer token for a fully logged in user.
func FormatAccessToken(userID uint) string {
	return fmt.Sprintf("%s%d", accessTokenPrefix, userID)
}

// ParseAccessToken extracts the user ID from a bearer token. Returns false
// when the token does not follow the issued format.
func ParseAccessToken(token string) (uint, bool) {
	if !strings.HasPrefix(token, accessTokenPrefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(token, accessTokenPrefix), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
