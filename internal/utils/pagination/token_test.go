package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	adjustmentDate := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 11, 3, 14, 30, 45, 123456789, time.UTC)
	adjustmentID := "0f8e2c4d-9a31-4f6e-8a3d-2b1c5d6e7f80"

	token := EncodeToken(adjustmentDate, createdAt, adjustmentID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, adjustmentDate, decodedDate, "Adjustment date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, adjustmentID, decodedID, "Adjustment ID should match after decode")

	// Zero time values round-trip too
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime, adjustmentID)
	decodedZeroDate, decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroTime)
	assert.Equal(t, adjustmentID, decodedZeroID)
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separators
	onePart := base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, _, err = DecodeToken(onePart)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Invalid date segment
	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2023-05-15T14:30:45.123456789Z|adj-1"))
	_, _, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "adjustment date parse")

	// Invalid created_at segment
	badCreatedAt := base64.StdEncoding.EncodeToString([]byte("2023-05-15T14:30:45.123456789Z|notatime|adj-1"))
	_, _, _, err = DecodeToken(badCreatedAt)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")

	// Empty ID segment
	emptyID := base64.StdEncoding.EncodeToString([]byte("2023-05-15T14:30:45.123456789Z|2023-05-15T14:30:45.123456789Z|"))
	_, _, _, err = DecodeToken(emptyID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}
