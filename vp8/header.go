package vp8

import (
	"github.com/deepteams/webm"
	"github.com/deepteams/webm/internal/container"
)

// HeaderInfo returns the dimensions stored in a VP8 key-frame header.
// Errors wrap webm.ErrHeader.
func HeaderInfo(payload []byte) (width, height int, err error) {
	return container.ParseVP8Header(payload)
}

var _ webm.HeaderInspector = webm.HeaderInspectorFunc(HeaderInfo)
