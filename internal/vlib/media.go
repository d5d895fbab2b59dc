package vlib

import (
	"path/filepath"
	"strings"
)

// imageExtensions is the fixed allowlist of displayable still-image types.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".heic": true,
	".webp": true,
}

// videoExtensions is the extended allowlist, enabled by configuration.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".m4v":  true,
	".3gp":  true,
}

// IsSupportedMedia reports whether the file name carries a recognized media
// extension. Video types count only when includeVideo is set.
func IsSupportedMedia(name string, includeVideo bool) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if imageExtensions[ext] {
		return true
	}
	return includeVideo && videoExtensions[ext]
}

// IsVideo reports whether the file name carries a video extension.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}
