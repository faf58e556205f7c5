// Package pixel implements the packed 5-6-5 color model and framebuffer shared
// by the matrix driver and the compositor.
//
// The color and image types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, with additional accessors for the
// raw packed values so the scan-out path can avoid interface conversions.
package pixel
