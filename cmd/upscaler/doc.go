// Command upscaler batch-upscales raster images with Real-ESRGAN, with
// optional GFPGAN face restoration and a Swin2SR denoising pre-pass. It
// resolves a single file or a directory tree into ordered work items,
// processes them sequentially on the best available device, and reports
// per-item outcomes plus an aggregate summary.
package main
