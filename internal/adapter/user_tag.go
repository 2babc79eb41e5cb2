package adapter

import "encoding/base64"

// EncodeUserTag converts the caller's user tag into the opaque form sent in
// the "user" field of chat completion requests.
func EncodeUserTag(tag string) string {
	return base64.StdEncoding.EncodeToString([]byte(tag))
}

// DecodeUserTag reverses EncodeUserTag.
func DecodeUserTag(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
