package dsp

// VP8 colorspace conversion, bit-exact with the libwebp reference tables.
// The arithmetic shifts on negative fixed-point values are intentional:
// Go's >> on signed integers floors, which is what the tables assume.

// YUVToR converts (y, v) to the R component.
func YUVToR(y, v uint8) uint8 {
	return clip[int(y)+vToR[v]-YUVRangeMin]
}

// YUVToG converts (y, u, v) to the G component.
func YUVToG(y, u, v uint8) uint8 {
	return clip[int(y)+((vToG[v]+uToG[u])>>YUVFix)-YUVRangeMin]
}

// YUVToB converts (y, u) to the B component.
func YUVToB(y, u uint8) uint8 {
	return clip[int(y)+uToB[u]-YUVRangeMin]
}

// YUVToRGB converts one YUV sample triple to RGB.
func YUVToRGB(y, u, v uint8, rgb []byte) {
	rgb[0] = YUVToR(y, v)
	rgb[1] = YUVToG(y, u, v)
	rgb[2] = YUVToB(y, u)
}

// YUVToBGR converts YUV to BGR (reversed channel order).
func YUVToBGR(y, u, v uint8, bgr []byte) {
	bgr[0] = YUVToB(y, u)
	bgr[1] = YUVToG(y, u, v)
	bgr[2] = YUVToR(y, v)
}

// YUVToRGBA converts YUV to RGB with an opaque alpha channel.
func YUVToRGBA(y, u, v uint8, rgba []byte) {
	YUVToRGB(y, u, v, rgba)
	rgba[3] = 0xff
}

// YUVToBGRA converts YUV to BGR with an opaque alpha channel.
func YUVToBGRA(y, u, v uint8, bgra []byte) {
	YUVToBGR(y, u, v, bgra)
	bgra[3] = 0xff
}

// RowFunc converts one row of samples. u and v are indexed by x/2 so that
// each chroma sample covers a horizontal pair of luma samples.
type RowFunc func(y, u, v []byte, dst []byte, width int)

func yuvToRGBRow(y, u, v []byte, dst []byte, width int) {
	for x := 0; x < width; x++ {
		YUVToRGB(y[x], u[x>>1], v[x>>1], dst[3*x:])
	}
}

func yuvToBGRRow(y, u, v []byte, dst []byte, width int) {
	for x := 0; x < width; x++ {
		YUVToBGR(y[x], u[x>>1], v[x>>1], dst[3*x:])
	}
}

func yuvToRGBARow(y, u, v []byte, dst []byte, width int) {
	for x := 0; x < width; x++ {
		YUVToRGBA(y[x], u[x>>1], v[x>>1], dst[4*x:])
	}
}

func yuvToBGRARow(y, u, v []byte, dst []byte, width int) {
	for x := 0; x < width; x++ {
		YUVToBGRA(y[x], u[x>>1], v[x>>1], dst[4*x:])
	}
}

// Row converters, indexed by output layout.
var (
	YUVToRGBRow  RowFunc = yuvToRGBRow
	YUVToBGRRow  RowFunc = yuvToBGRRow
	YUVToRGBARow RowFunc = yuvToRGBARow
	YUVToBGRARow RowFunc = yuvToBGRARow
)
