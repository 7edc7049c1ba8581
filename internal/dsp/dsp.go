// Package dsp provides the fixed-point YUV -> RGB kernels used by the
// color converter. The lookup tables are filled once at package
// initialisation and are read-only afterwards, so the kernels are safe
// for concurrent use without locking.
package dsp

func init() {
	initYUVTables()
	initClipTables()
}
