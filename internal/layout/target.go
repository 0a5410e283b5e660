package layout

// Target describes the ABI target triple and its pointer properties.
//
// Step B scope: only x86_64-linux-gnu is implemented.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
}

func X86_64LinuxGNU() Target {
	return Target{
		Triple:   "x86_64-linux-gnu",
		PtrSize:  8,
		PtrAlign: 8,
	}
}

// PtrBits returns the target's pointer width in bits, for
// types.Interner.BitWidth's ptrBits argument.
func (t Target) PtrBits() uint8 { return uint8(t.PtrSize * 8) }
