package alloc

import (
	"os"

	"github.com/joshuapare/arenakit/internal/logger"
)

// Runtime flag for allocation logging - controlled by ARENAKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENAKIT_LOG_ALLOC") != ""

// SetLogging toggles allocation logging at runtime. Records go to logger.L at
// debug level, so logger.Init must also enable that level to see them.
func SetLogging(on bool) { logAlloc = on }

func logInit(kind string, args ...any) {
	logger.Debug("alloc: created "+kind, args...)
}

func logReject(kind string, size, alignment int) {
	logger.Debug("alloc: request fits no tier", "allocator", kind, "size", size, "align", alignment)
}

func logExhausted(kind string, tier, size, used int) {
	logger.Debug("alloc: exhausted", "allocator", kind, "tier", tier, "size", size, "used", used)
}

func logSplit(kind string, from, to, pieces int) {
	logger.Debug("alloc: split block", "allocator", kind, "from_tier", from, "to_tier", to, "pieces", pieces)
}

func logClear(kind string, size int) {
	logger.Debug("alloc: cleared", "allocator", kind, "arena", size)
}
