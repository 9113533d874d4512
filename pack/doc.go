// Package pack concatenates typed binary blocks into one 4-byte aligned blob
// and records where each block landed.
//
// Blocks keep the caller's order. Each block's offset is the running length
// of the blocks before it; zero padding is appended once, after the last
// block, and belongs to no block:
//
//	blob, err := pack.Pack(positions, indices)
//	// blob.Layout[1].Offset == len(positions.Data)
//	// len(blob.Data) % 4 == 0
//
// Splitting the blob by its layout returns every block byte-for-byte.
package pack
