package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"
)

const (
	SignatureField = "Signature"
	secretKeyField = "SecretKey"
)

// Sign computes the Base64 encoded HMAC-SHA256 signature of fields.
// Fields with empty values and the Signature field itself are not signed.
func Sign(fields map[string]string, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(StringToSign(fields, secretKey)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func StringToSign(fields map[string]string, secretKey string) string {
	canonical := CanonicalString(fields)
	if canonical == "" {
		return secretKeyField + "=" + secretKey
	}

	return canonical + "&" + secretKeyField + "=" + secretKey
}

// CanonicalString joins the signable fields as key=value pairs ordered by
// the byte value of their keys.
func CanonicalString(fields map[string]string) string {
	keys := getSortedSignableKeys(fields)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + "=" + fields[key]
	}

	return strings.Join(pairs, "&")
}

func getSortedSignableKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key, value := range fields {
		if value == "" || key == SignatureField {
			continue
		}
		keys = append(keys, key)
	}

	// sort.Strings compares bytes, never locale collation
	sort.Strings(keys)
	return keys
}
