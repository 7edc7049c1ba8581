package dsp

// Fixed-point parameters shared by the chroma tables and the clip table.
const (
	YUVFix  = 16 // fixed-point precision
	YUVHalf = 1 << (YUVFix - 1)

	// YUVRangeMin and YUVRangeMax bound y + offset for every (y, u, v)
	// triple; the clip table covers [YUVRangeMin, YUVRangeMax).
	YUVRangeMin = -227
	YUVRangeMax = 256 + 226
)

// Chroma contribution tables, indexed by the 8-bit U or V sample.
// vToR and uToB hold final offsets; uToG and vToG hold unshifted
// fixed-point terms that are summed before the shift.
var (
	vToR [256]int
	uToG [256]int
	vToG [256]int
	uToB [256]int
)

// clip maps y + offset to [0, 255]. Negative-index access is emulated
// through the YUVRangeMin offset.
var clip [YUVRangeMax - YUVRangeMin]uint8

func initYUVTables() {
	for i := 0; i < 256; i++ {
		c := i - 128
		vToR[i] = (89858*c + YUVHalf) >> YUVFix
		uToG[i] = -22014*c + YUVHalf
		vToG[i] = -45773 * c
		uToB[i] = (113618*c + YUVHalf) >> YUVFix
	}
}

func initClipTables() {
	for i := YUVRangeMin; i < YUVRangeMax; i++ {
		k := ((i-16)*76283 + YUVHalf) >> YUVFix
		if k < 0 {
			k = 0
		} else if k > 255 {
			k = 255
		}
		clip[i-YUVRangeMin] = uint8(k)
	}
}
