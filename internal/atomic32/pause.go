package atomic32

import "runtime"

// Pause yields the current goroutine's turn on its CPU for one
// scheduling quantum. Go exposes no portable equivalent of a hardware
// PAUSE/YIELD instruction, so every spin loop in this module calls
// runtime.Gosched here instead — the same substitute the teacher
// implementation used for its own spin loops.
func Pause() { runtime.Gosched() }
