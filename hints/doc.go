// Package hints builds the execution-hints tree consumed by a
// memory-mapping inference engine: a JSON form for human/debug
// consumption and a fixed-offset packed-binary form for O(1) access,
// emitted side by side per spec.md §4.4.
//
//	offset 0   HINT header (64 bytes)
//	           magic "HINT", version, 6x offset, 6x count, feature bitmap, reserved
//	offset 64  TextModelConfig   (128 bytes, present if text model known)
//	offset ..  VisionModelConfig (64 bytes, present if vision encoder known)
//	offset ..  audio/code/cortex/spatial records, when present
//	           (audio/code/cortex reuse TextModelConfig, 128 bytes;
//	           spatial reuses VisionModelConfig, 64 bytes)
//	           total length padded to 32 bytes
package hints
