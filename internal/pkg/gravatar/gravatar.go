package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL derives a deterministic avatar URL from an email address:
// 200px, PG-rated, with the "mystery man" default for unknown emails.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm",
		hex.EncodeToString(sum[:]),
	)
}
