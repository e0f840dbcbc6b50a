// Package section defines the low-level binary structures and constants of
// the front-coded block format and its snapshot image.
//
// # Block Layout
//
// A block is a 7-byte BlockHeader kept by the caller next to a data buffer
// of exactly Capacity bytes:
//
//	┌──────────────────────────────────────────────┐
//	│ Prefix (PrefixSize bytes)                    │
//	├──────────────────────────────────────────────┤
//	│ Index ((Length+1) × 4 bytes)                 │
//	│  - entry 0..Length-1: offset, size of suffix │
//	│  - entry Length: sentinel, offset = used size│
//	├──────────────────────────────────────────────┤
//	│ Payload (suffix bytes, possibly with gaps)   │
//	├──────────────────────────────────────────────┤
//	│ Free space                                   │
//	└──────────────────────────────────────────────┘
//
// Index entries are kept in ascending key order; payload bytes are in
// insertion order and may contain gaps left by deletes or prefix growth.
//
// The buffer uses the host byte order by default, see endian.GetNativeEngine.
//
// # Snapshot Layout
//
// A snapshot is a SnapshotHeader followed by the (optionally compressed)
// first RawSize bytes of the block buffer. See SnapshotHeader for the
// field table.
package section
