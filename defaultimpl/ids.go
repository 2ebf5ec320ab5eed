package impl

import (
	"crypto/rand"
	"encoding/base64"
	"log"
)

// genId generate a random (unique) id for providers without a configured cache id.
// The id is the cache key and appears in all log messages of the provider.
func genId() string {
	buf := make([]byte, 24)

	n, err := rand.Read(buf)
	if err != nil {
		log.Printf("ERROR: impl/genId: read error: %v", err)
		return "dp-xxErRoRxxErRoRx-xxErRoRxxErRoRx"
	}

	s := base64.RawURLEncoding.EncodeToString(buf[:n])
	if len(s) < 28 {
		log.Printf("ERROR: impl/genId: len error: %d", len(s))
		return "dp-oxErRoRoxErRoRo-oxErRoRoxErRoRo"
	}

	return "dp-" + s[0:14] + "-" + s[14:28]
}
