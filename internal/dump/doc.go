// Package dump implements the diagnostic report format: a JSON document
// split into block-compressed chunks behind a fixed header.
//
// Layout:
//
//	[magic "RSDR"][version u16][compression u8][reserved u8]
//	[blocks u32][crc32 u32]
//	blocks x [uncompressed u32][compressed u32][data]
//
// A compressed size of 0 marks a block stored as-is. The checksum covers
// the uncompressed JSON.
package dump
