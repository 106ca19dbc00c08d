// Package lint checks widget stylesheets for class names the tip page does
// not render and for edits that break the widget layout.
package lint

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ClassRef is a class selector occurrence. Line and Column point at the dot.
type ClassRef struct {
	Name   string
	Line   int
	Column int
}

// Declaration is one property: value pair inside a rule.
type Declaration struct {
	Property string
	Value    string
	Line     int
	Column   int
}

// Rule is a qualified rule with the class selectors of its prelude.
type Rule struct {
	Selectors    []ClassRef
	Declarations []Declaration
	Line         int
}

// Comment is a /* ... */ block.
type Comment struct {
	Text   string
	Line   int
	Column int
}

// Stylesheet is the parsed form of one CSS document.
type Stylesheet struct {
	Rules    []Rule
	Comments []Comment
	Err      error // first lexer error, if any
}

// parserState tracks the token position while walking the lexer output
type parserState struct {
	lexer *css.Lexer
	sheet *Stylesheet
	line  int
	col   int
}

// Parse walks content with the tdewolff CSS lexer. It never fails outright:
// a lexer error is recorded in Stylesheet.Err and parsing stops there.
func Parse(content string) *Stylesheet {
	s := &parserState{
		lexer: css.NewLexer(parse.NewInputString(content)),
		sheet: &Stylesheet{},
		line:  1,
		col:   1,
	}

	var pending []ClassRef
	atPrelude := false
	ruleLine := 0

	for {
		tt, text, line, col := s.next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				s.sheet.Err = fmt.Errorf("%d:%d: %w", line, col, err)
			}
			return s.sheet

		case css.CommentToken:
			s.addComment(text, line, col)

		case css.AtKeywordToken:
			atPrelude = true

		case css.DelimToken:
			if atPrelude || len(text) == 0 || text[0] != '.' {
				continue
			}
			// A class selector is a '.' directly followed by an identifier
			tt2, name, _, _ := s.next()
			if tt2 == css.IdentToken {
				if len(pending) == 0 {
					ruleLine = line
				}
				pending = append(pending, ClassRef{Name: name, Line: line, Column: col})
			}

		case css.SemicolonToken:
			// @import and friends
			atPrelude = false
			pending = nil

		case css.LeftBraceToken:
			if atPrelude {
				// @media and @supports blocks contain rules
				atPrelude = false
				pending = nil
				continue
			}
			if len(pending) == 0 {
				ruleLine = line
			}
			s.sheet.Rules = append(s.sheet.Rules, Rule{
				Selectors:    pending,
				Declarations: s.extractDeclarations(),
				Line:         ruleLine,
			})
			pending = nil

		case css.RightBraceToken:
			pending = nil
		}
	}
}

// next returns the next token with the position it starts at.
func (s *parserState) next() (css.TokenType, string, int, int) {
	tt, data := s.lexer.Next()
	line, col := s.line, s.col
	for _, b := range data {
		if b == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	return tt, string(data), line, col
}

func (s *parserState) addComment(text string, line, col int) {
	s.sheet.Comments = append(s.sheet.Comments, Comment{Text: text, Line: line, Column: col})
}

// extractDeclarations reads property: value pairs until the closing brace.
// Nested blocks are skipped.
func (s *parserState) extractDeclarations() []Declaration {
	var decls []Declaration
	var cur *Declaration
	var value []string

	commit := func() {
		if cur != nil && len(value) > 0 {
			cur.Value = strings.TrimSpace(strings.Join(value, ""))
			decls = append(decls, *cur)
		}
		cur = nil
		value = nil
	}

	sawColon := false
	for {
		tt, text, line, col := s.next()
		switch {
		case tt == css.ErrorToken:
			commit()
			return decls
		case tt == css.RightBraceToken:
			commit()
			return decls
		case tt == css.LeftBraceToken:
			commit()
			s.skipBlock()
		case tt == css.CommentToken:
			s.addComment(text, line, col)
		case tt == css.SemicolonToken:
			commit()
			sawColon = false
		case tt == css.IdentToken && cur == nil:
			cur = &Declaration{Property: strings.ToLower(text), Line: line, Column: col}
			sawColon = false
		case tt == css.ColonToken && cur != nil && !sawColon:
			sawColon = true
		case cur != nil && sawColon:
			value = append(value, text)
		}
	}
}

// skipBlock consumes tokens up to the brace matching one already read.
func (s *parserState) skipBlock() {
	depth := 1
	for depth > 0 {
		tt, text, line, col := s.next()
		switch tt {
		case css.ErrorToken:
			return
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		case css.CommentToken:
			s.addComment(text, line, col)
		}
	}
}
