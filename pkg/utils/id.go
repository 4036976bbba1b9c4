package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneratePlanID generates a plan run ID with a timestamp prefix and a
// short random suffix, e.g. "plan-20260830-142501-9f3a2c1d".
func GeneratePlanID() string {
	timestamp := time.Now().Format("20060102-150405")
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("plan-%s-%s", timestamp, suffix)
}
