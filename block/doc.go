// Package block implements the front-coded sorted string block.
//
// A block stores a sorted set of byte strings that share a common prefix in
// a single caller-owned buffer of fixed capacity. The prefix is stored once;
// each string contributes only its suffix plus a 4-byte index entry. See the
// section package for the byte layout.
//
// # Basic Usage
//
//	buf := make([]byte, 4096)
//	b, err := block.New(buf)
//	if err != nil {
//	    return err
//	}
//
//	pos, err := b.Insert([]byte("user:1001"))
//	switch {
//	case errors.Is(err, errs.ErrBlockFull):
//	    // reclaim space and retry, or split the block
//	    if b.GrowPrefix() > 0 || b.Stats().ReclaimableSize > 0 {
//	        b.Vacuumize()
//	    }
//	case errors.Is(err, errs.ErrNeedsReencode):
//	    // the key belongs to another block
//	}
//
// # Space Reclamation
//
// Delete never moves payload bytes; the suffix of a deleted string stays
// behind as a gap and UsedSize does not shrink. GrowPrefix absorbs leading
// bytes shared by every suffix into the prefix without moving suffix bytes,
// which also leaves dead bytes behind. Vacuumize packs all suffixes
// back-to-back after the index table and is the only operation that lowers
// UsedSize.
//
// # Failure Semantics
//
// Every mutating operation checks all preconditions before writing a single
// byte, so a returned error always leaves the header and buffer untouched.
//
// # Thread Safety
//
// A Block holds no locks. Callers must serialize all access to one block;
// distinct blocks share no state.
package block
