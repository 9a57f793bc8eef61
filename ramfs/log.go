package ramfs

import (
	"fmt"
	"os"
)

// debugFS enables filesystem trace logging at compile time. Flip it while
// working on the on-disk layout; ship with false.
const debugFS = false

// logFS enables the same tracing at run time.
var logFS = os.Getenv("SHARK_LOG_FS") != ""

func fsLogf(format string, args ...any) {
	if debugFS || logFS {
		fmt.Fprintf(os.Stderr, "[fs] "+format+"\n", args...)
	}
}
