// Package imaging provides the raster buffer type shared by the pipeline
// stages, plus codec and resampling helpers. Buffers carry an explicit
// channel count so grayscale and alpha layouts survive a round trip through
// three-channel inference engines.
package imaging
