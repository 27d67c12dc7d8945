package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NamespaceDir maps an object owner such as "job:<id>" to a directory name.
// Owners differing only in case or surrounding space share a directory.
func NamespaceDir(owner string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(owner))))
	return hex.EncodeToString(sum[:16])
}
