package lexer

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isBinDigit(b byte) bool { return b == '0' || b == '1' }

func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
