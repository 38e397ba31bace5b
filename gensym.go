package macro

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strconv"
	"sync/atomic"
)

// Gensym allocates fresh, unique symbol names. Names are built from a caller
// supplied prefix and a monotonically increasing counter, shared for the
// lifetime of the allocator. A counter value is never handed out twice, so
// two symbols allocated from the same Gensym can never collide, no matter
// how many goroutines allocate concurrently.
//
// The zero value is ready to use.
type Gensym struct {
	counter uint64
}

// Next returns prefix concatenated with the next counter value.
func (g *Gensym) Next(prefix string) string {
	n := atomic.AddUint64(&g.counter, 1)
	return prefix + strconv.FormatUint(n, 10)
}

// GlobalAllocator is the process-wide allocator. Expansions use it unless
// a client injects its own (see expand.Allocator).
var GlobalAllocator = &Gensym{}
