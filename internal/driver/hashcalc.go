package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"routescan/internal/source"
)

// cacheSchemaVersion is bumped whenever UnitPayload or extraction output changes.
const cacheSchemaVersion uint16 = 1

// UnitKey identifies a cached scan: H(schema || content hash || unit name || descriptor digest).
func UnitKey(file *source.File, unitName, descriptorDigest string) string {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], cacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(unitName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(descriptorDigest))
	return hex.EncodeToString(h.Sum(nil))
}
