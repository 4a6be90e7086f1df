// FilePath: internal/videocodec/videocodec.go

// Package videocodec transcodes embedded video payloads between raw bytes
// and the base64 transport form the mobile client embeds in JSON.
package videocodec

import (
	"encoding/base64"
	"fmt"
)

// Encode renders raw video bytes in transport form.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode recovers raw video bytes from transport form. Malformed input
// returns an error; callers translate it into a non-fatal response.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("malformed video payload: %w", err)
	}
	return data, nil
}
