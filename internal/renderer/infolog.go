package renderer

import "bytes"

// readInfoLog allocates room for length bytes plus a terminator, lets fetch
// fill it and returns the text before the first NUL. Used by the desktop and
// the GLES driver alike.
func readInfoLog(length int32, fetch func(size int32, buf *uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length+1)
	fetch(length, &buf[0])
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
