package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReceiptNumber builds a prefixed, millisecond-timestamped
// receipt token, e.g. RCP-1724900000000 or HLD-1724900000000. Unique
// within a session at till speeds.
func GenerateReceiptNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// GenerateSKU generates a unique product SKU
func GenerateSKU() string {
	return "PRD-" + strings.ToUpper(uuid.New().String()[:8])
}
