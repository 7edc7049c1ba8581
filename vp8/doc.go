// Package vp8 provides the VP8 collaborators consumed by package webm: a
// header inspector, a decoder backed by golang.org/x/image/vp8 and a lossy
// encoder backed by github.com/gen2brain/webp.
//
//	codec, err := webm.NewCodec(vp8.NewDecoder(), vp8.NewEncoder(), nil)
package vp8
