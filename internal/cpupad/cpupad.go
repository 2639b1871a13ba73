// Package cpupad provides cache-line padded word types used to keep
// lock state and per-waiter flags from sharing a cache line with
// their neighbors. Without this padding, the Anderson array lock's
// flags devolve into a false-sharing benchmark rather than the
// algorithm spec.md describes ("slots must lie on distinct cache
// lines"). Sized via golang.org/x/sys/cpu.CacheLinePad, the same
// mechanism the pack's llxisdsh-synx module uses for its own
// padding (internal/opt.CacheLineSize_).
package cpupad

import "golang.org/x/sys/cpu"

// Flag32 is a 32-bit flag word padded to occupy a full cache line, so
// that an array of Flag32 gives every element its own line.
type Flag32 struct {
	V   uint32
	_   cpu.CacheLinePad
}
