// Package snapshot serializes a block into a self-describing image and back.
//
// An image is a 27-byte header followed by the used region of the block data
// buffer, optionally compressed. Free space past the used region is not
// stored; Decode allocates a fresh buffer of the original capacity.
//
//	Bytes  | Field        | Description
//	-------|--------------|----------------------------------------------
//	0-1    | Options      | magic number and endianness bit, little-endian
//	2      | Compression  | format.CompressionType of the payload
//	3      | Reserved     | must be 0
//	4-10   | Block header | capacity, prefix size, length
//	11-14  | Raw size     | used bytes before compression
//	15-18  | Payload size | bytes following the header
//	19-26  | Checksum     | xxHash64 of the raw used bytes
//
// The index table inside the payload keeps the byte order of the block it
// came from, and the endianness bit records that order. Decode reopens the
// block with the same order regardless of the host.
//
// # Usage
//
//	img, err := snapshot.Encode(b, snapshot.WithCompression(format.CompressionZstd))
//	...
//	restored, err := snapshot.Decode(img)
package snapshot
