// Package imaging provides the image plumbing used to rebuild a picture from
// masked sub-images.
//
// This package covers everything that touches pixels without deciding how they
// are combined: locating candidate files, decoding them, conforming them to a
// canonical size and color mode, and writing results back to disk. The merge
// rule itself lives in package composite.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner. X increases rightward and Y increases downward. A Canvas
// always has its origin at (0,0).
//
// # Color Representation
//
// The canonical color mode is 8-bit RGB with no alpha channel. Sources in any
// other Go color model (paletted, grayscale, YCbCr, NRGBA, 16-bit) are
// expanded to RGB when conformed. Alpha is dropped, not composited, so a
// translucent pixel keeps its stored color.
//
// # Sentinels
//
// Pure black (0,0,0) and pure white (255,255,255) are "no data" markers.
// See Black, White and RGB.IsSentinel.
//
// # Thread Safety
//
// Functions in this package are stateless. A Canvas is not safe for
// concurrent mutation.
package imaging
