package render

// DecodeKey turns a raw stdin read into a key identity: "up", "enter",
// "escape", a printable character, or "" for sequences the reader does
// not use.
func DecodeKey(buf []byte, n int) string {
	if n <= 0 {
		return ""
	}

	// Escape sequences arrive as one read in raw mode.
	if buf[0] == 0x1b {
		if n == 1 {
			return "escape"
		}
		if n >= 3 && (buf[1] == '[' || buf[1] == 'O') {
			switch buf[2] {
			case 'A':
				return "up"
			case 'B':
				return "down"
			case 'C':
				return "right"
			case 'D':
				return "left"
			case 'H':
				return "home"
			case 'F':
				return "end"
			}
		}
		// vt-style home and end: ESC [ 1 ~ and ESC [ 4 ~
		if n >= 4 && buf[1] == '[' && buf[3] == '~' {
			switch buf[2] {
			case '1':
				return "home"
			case '4':
				return "end"
			}
		}
		return ""
	}

	switch buf[0] {
	case '\r', '\n':
		return "enter"
	case 0x7f, '\b':
		return "backspace"
	case ' ':
		return "space"
	}

	if buf[0] >= 0x20 && buf[0] < 0x7f {
		return string(rune(buf[0]))
	}
	return ""
}
