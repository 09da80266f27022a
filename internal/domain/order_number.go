package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberPrefix = "HM"

// NewOrderNumber synthesizes a human-facing order number: "HM", the current
// date as YYMMDD, and a zero-padded random suffix in [0, 999]. The suffix is
// not collision-free within a day; the store's unique index is the actual
// uniqueness guarantee and callers retry on conflict.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%s%03d", orderNumberPrefix, now.Format("060102"), rand.Intn(1000))
}
