package album

import "bytes"

// MagicSniffer identifies images by magic bytes, never by file extension.
// Covers the formats the matching pipeline can decode: JPEG, PNG, GIF,
// WebP, BMP, TIFF and HEIC/HEIF.
type MagicSniffer struct{}

// IsImage reports whether header starts with a known image signature.
func (MagicSniffer) IsImage(header []byte) bool {
	if len(header) < 8 {
		return false
	}
	switch {
	// JPEG: FF D8 FF
	case header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return true
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(header, []byte("\x89PNG\r\n\x1a\n")):
		return true
	// GIF: GIF87a or GIF89a
	case bytes.HasPrefix(header, []byte("GIF87a")) || bytes.HasPrefix(header, []byte("GIF89a")):
		return true
	// WebP: RIFF....WEBP
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WEBP")):
		return true
	// BMP: BM
	case bytes.HasPrefix(header, []byte("BM")):
		return true
	// TIFF: II*\0 (little-endian) or MM\0* (big-endian)
	case bytes.HasPrefix(header, []byte("II*\x00")) || bytes.HasPrefix(header, []byte("MM\x00*")):
		return true
	// HEIC/HEIF/AVIF: ISO BMFF ftyp box with a heif-family brand
	case len(header) >= 12 && bytes.Equal(header[4:8], []byte("ftyp")) && isHeifBrand(header[8:12]):
		return true
	}
	return false
}

func isHeifBrand(brand []byte) bool {
	switch string(brand) {
	case "heic", "heix", "hevc", "heim", "heis", "hevm", "hevs", "mif1", "msf1", "avif":
		return true
	}
	return false
}
