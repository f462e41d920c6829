package profiler

// BlockIdentity stably names a code block for timing purposes. Identity is
// by pointer, not by Name: every map in this package is keyed on
// *BlockIdentity, so two values that happen to share a Name are still
// distinct blocks unless they are the same allocation. The idiomatic way
// to use one is to declare a package-level var and take its address:
//
//	var blockDecode = &profiler.BlockIdentity{Name: "decode"}
//	defer profiler.TimedBlock(blockDecode)()
type BlockIdentity struct {
	Name string
}

func (b *BlockIdentity) String() string { return b.Name }
