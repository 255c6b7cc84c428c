package helpers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// IDGenerator generates the identifier formats used across the platform.
type IDGenerator struct {
	rand *rand.Rand
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateUUID generates a UUID v4.
func (g *IDGenerator) GenerateUUID() string {
	return uuid.New().String()
}

// GenerateReceiptNo generates a donation receipt number.
// Format: RCPT-YYYYMMDD-XXXXXX (e.g., RCPT-20260829-A1B2C3)
func (g *IDGenerator) GenerateReceiptNo() string {
	dateStr := time.Now().Format("20060102")
	return fmt.Sprintf("RCPT-%s-%s", dateStr, g.randomAlphanumeric(6))
}

// GenerateTransactionID generates a payment transaction ID.
// Format: TRX-YYYYMMDD-XXXXXX
func (g *IDGenerator) GenerateTransactionID() string {
	dateStr := time.Now().Format("20060102")
	return fmt.Sprintf("TRX-%s-%s", dateStr, g.randomAlphanumeric(6))
}

// GenerateCode generates a random alphanumeric code.
func (g *IDGenerator) GenerateCode(length int) string {
	return g.randomAlphanumeric(length)
}

func (g *IDGenerator) randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[g.rand.Intn(len(charset))]
	}
	return string(b)
}
