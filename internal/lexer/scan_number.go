package lexer

import (
	"codesniff/internal/token"
)

// Поддержка: 123, 1_000, 0x1F, 0b101, 0o17, 0777, 1.5, .5, 1., 1e3, 1.5E-3.
// '_' допустим только между цифрами. Неполные формы ("0x", "1e") не ошибка:
// число заканчивается раньше, остаток сканируется как имя.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.LNumber

	if lx.cursor.Peek() == '0' {
		b1 := lx.cursor.PeekAt(1)
		var digit func(byte) bool
		switch b1 {
		case 'x', 'X':
			digit = isHex
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		}
		if digit != nil && digit(lx.cursor.PeekAt(2)) {
			lx.cursor.BumpN(2)
			lx.skipDigits(digit)
			return lx.emit(kind, start)
		}
	}

	if lx.cursor.Peek() != '.' {
		lx.skipDigits(isDec)
	}

	// дробная часть: "1.5", "1.", ".5"; но не "1..." и не "1.="
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' && lx.cursor.PeekAt(1) != '=' {
		lx.cursor.Bump()
		kind = token.DNumber
		if isDec(lx.cursor.Peek()) {
			lx.skipDigits(isDec)
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.skipDigits(isDec)
			kind = token.DNumber
		} else {
			lx.cursor.Reset(m)
		}
	}

	return lx.emit(kind, start)
}

func (lx *Lexer) skipDigits(digit func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if digit(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '_' && digit(lx.cursor.PeekAt(1)) {
			lx.cursor.BumpN(2)
			continue
		}
		return
	}
}
