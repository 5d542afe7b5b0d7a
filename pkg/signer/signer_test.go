package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedSignature(stringToSign, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestCanonicalString(t *testing.T) {
	t.Run("Should sort keys by byte value and join pairs", func(t *testing.T) {
		fields := map[string]string{"B": "2", "A": "1"}

		assert.Equal(t, "A=1&B=2", CanonicalString(fields))
		assert.Equal(t, "A=1&B=2&SecretKey=S", StringToSign(fields, "S"))
	})

	t.Run("Should place upper case keys before lower case keys", func(t *testing.T) {
		fields := map[string]string{"image": "a", "Timestamp": "1", "AccountId": "acc", "mask": "b"}

		assert.Equal(t, "AccountId=acc&Timestamp=1&image=a&mask=b", CanonicalString(fields))
	})

	t.Run("Should use only the secret key when there is nothing to sign", func(t *testing.T) {
		assert.Equal(t, "SecretKey=S", StringToSign(map[string]string{}, "S"))
		assert.Equal(t, "SecretKey=S", StringToSign(nil, "S"))
		assert.Equal(t, "SecretKey=S", StringToSign(map[string]string{"Empty": ""}, "S"))
	})

	t.Run("Should never include the signature field itself", func(t *testing.T) {
		fields := map[string]string{"A": "1", SignatureField: "previous"}

		assert.Equal(t, "A=1", CanonicalString(fields))
	})
}

func TestSign(t *testing.T) {
	t.Run("Should compute HMAC-SHA256 over the string to sign", func(t *testing.T) {
		fields := map[string]string{"B": "2", "A": "1"}

		assert.Equal(t, expectedSignature("A=1&B=2&SecretKey=S", "S"), Sign(fields, "S"))
	})

	t.Run("Should sign empty payload using the secret key alone", func(t *testing.T) {
		assert.Equal(t, expectedSignature("SecretKey=S", "S"), Sign(map[string]string{}, "S"))
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		fields := map[string]string{"AccountId": "acc", "Timestamp": "1700000000", "RequestId": "r-1"}

		first := Sign(fields, "secret")
		for i := 0; i < 50; i++ {
			require.Equal(t, first, Sign(fields, "secret"))
		}
	})

	t.Run("Should not depend on insertion order", func(t *testing.T) {
		keys := []string{"SourceLanguage", "TargetLanguage", "ImageUrl", "AccountId", "Timestamp", "a", "Z"}
		reference := map[string]string{}
		for _, key := range keys {
			reference[key] = key + "-value"
		}

		for shift := range keys {
			permuted := map[string]string{}
			for i := range keys {
				key := keys[(i+shift)%len(keys)]
				permuted[key] = key + "-value"
			}

			assert.Equal(t, Sign(reference, "secret"), Sign(permuted, "secret"))
		}
	})

	t.Run("Should ignore fields with empty values", func(t *testing.T) {
		fields := map[string]string{"A": "1", "B": "2"}
		withEmpty := map[string]string{"A": "1", "B": "2", "C": ""}

		assert.Equal(t, Sign(fields, "S"), Sign(withEmpty, "S"))
	})

	t.Run("Should produce different signatures for different secrets", func(t *testing.T) {
		fields := map[string]string{"A": "1"}

		assert.NotEqual(t, Sign(fields, "S1"), Sign(fields, "S2"))
	})
}
