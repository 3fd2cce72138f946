// Package manuscript turns raw transcript exports from a video editor into
// narration manuscripts ready for vertical typesetting.
//
// A conversion runs four steps in a fixed order: structural rewrite rules
// (timecode compaction, N/ON cue restructuring, continuation alignment),
// duplicate cue collapsing, blank-line normalization, and full-width
// character mapping. Each step is a pure function over the whole document and
// can be called on its own; Steps exposes the declared order so callers and
// tests can inspect it.
//
// Decoding lives at the boundary: Decode validates and transcodes raw bytes
// before any step runs and is the only place a conversion can fail. Finished
// manuscripts can be read back with ParseCues, and Highlights/Segment locate
// the ON cues a renderer is expected to mark.
//
// Nothing in this package keeps state between calls, so documents may be
// converted concurrently without coordination.
package manuscript
