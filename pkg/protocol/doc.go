// Package protocol implements the binary wire format used by live sessions.
//
// A client sends abstract trees; the server answers with the operations
// that bring the client's copy up to date. Both travel in frames.
//
// # Wire Format
//
// Every message is framed with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameTree (0x01): Client → Server abstract tree
//   - FrameOperations (0x02): Server → Client operation batch
//   - FrameError (0x05): Error message
//
// # Encoding
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - ZigZag: Signed integers encoded as unsigned varints
//   - Length-prefixed: Strings and byte arrays prefixed with varint length
//   - Typed values: a tag byte followed by the value, for attribute values
//     and leaf content (null, bool, string, int, float, JSON)
//
// Paths travel in their string form, e.g. "/children#0.height".
//
// # Limits
//
// Decoding rejects lengths above DefaultMaxAllocation, collections above
// MaxCollectionCount and trees nested deeper than MaxTreeDepth, so a
// malicious peer cannot force large allocations or deep recursion.
package protocol
