package stream

import "codesniff/internal/token"

// FindNext returns the first index in [from, to) whose kind is in kinds
// (or not in kinds when exclude is set). to == token.None means the end of
// the stream.
func (s *Stream) FindNext(kinds token.Set, from, to int, exclude bool) int {
	if to == token.None || to > len(s.Tokens) {
		to = len(s.Tokens)
	}
	for i := max(from, 0); i < to; i++ {
		if kinds.Has(s.Tokens[i].Kind) != exclude {
			return i
		}
	}
	return token.None
}

// FindPrevious walks backwards from from down to to (inclusive).
// to == token.None means the start of the stream.
func (s *Stream) FindPrevious(kinds token.Set, from, to int, exclude bool) int {
	if to == token.None || to < 0 {
		to = 0
	}
	for i := min(from, len(s.Tokens)-1); i >= to; i-- {
		if kinds.Has(s.Tokens[i].Kind) != exclude {
			return i
		}
	}
	return token.None
}

// FindNextText is FindNext restricted to tokens whose text equals text.
// An empty kinds set matches every kind.
func (s *Stream) FindNextText(kinds token.Set, text string, from, to int) int {
	if to == token.None || to > len(s.Tokens) {
		to = len(s.Tokens)
	}
	for i := max(from, 0); i < to; i++ {
		t := &s.Tokens[i]
		if t.Text == text && (kinds.IsZero() || kinds.Has(t.Kind)) {
			return i
		}
	}
	return token.None
}

// FindPreviousText is FindPrevious restricted to tokens whose text equals text.
func (s *Stream) FindPreviousText(kinds token.Set, text string, from, to int) int {
	if to == token.None || to < 0 {
		to = 0
	}
	for i := min(from, len(s.Tokens)-1); i >= to; i-- {
		t := &s.Tokens[i]
		if t.Text == text && (kinds.IsZero() || kinds.Has(t.Kind)) {
			return i
		}
	}
	return token.None
}

// NextNonEmpty returns the first code token after idx.
func (s *Stream) NextNonEmpty(idx int) int {
	return s.FindNext(token.EmptyTokens, idx+1, token.None, true)
}

// PrevNonEmpty returns the last code token before idx.
func (s *Stream) PrevNonEmpty(idx int) int {
	if idx <= 0 {
		return token.None
	}
	return s.FindPrevious(token.EmptyTokens, idx-1, token.None, true)
}

// FindFirstOnLine returns the first token on idx's line whose kind is in
// kinds (or not in kinds when exclude is set).
func (s *Stream) FindFirstOnLine(kinds token.Set, idx int, exclude bool) int {
	if !s.Valid(idx) {
		return token.None
	}
	line := s.Tokens[idx].Line
	found := token.None
	for i := idx; i >= 0 && s.Tokens[i].Line == line; i-- {
		if kinds.Has(s.Tokens[i].Kind) != exclude {
			found = i
		}
	}
	return found
}

// HasCondition reports whether any scope enclosing idx is owned by a kind in kinds.
func (s *Stream) HasCondition(idx int, kinds token.Set) bool {
	if !s.Valid(idx) {
		return false
	}
	for _, owner := range s.Tokens[idx].Conditions {
		if kinds.Has(s.Tokens[owner].Kind) {
			return true
		}
	}
	return false
}

// GetCondition returns the outermost enclosing scope owner of the given kind.
func (s *Stream) GetCondition(idx int, kind token.Kind) int {
	if !s.Valid(idx) {
		return token.None
	}
	for _, owner := range s.Tokens[idx].Conditions {
		if s.Tokens[owner].Kind == kind {
			return owner
		}
	}
	return token.None
}

// LastCondition returns the innermost enclosing scope owner whose kind is in kinds.
func (s *Stream) LastCondition(idx int, kinds token.Set) int {
	if !s.Valid(idx) {
		return token.None
	}
	conds := s.Tokens[idx].Conditions
	for i := len(conds) - 1; i >= 0; i-- {
		if kinds.Has(s.Tokens[conds[i]].Kind) {
			return conds[i]
		}
	}
	return token.None
}
