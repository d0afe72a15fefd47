package builtins

import (
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
)

// Strings is the reference string-manipulation plugin, grounded on the
// teacher's internal/bytecode/vm_builtins_string.go dispatch table.
// Locale-aware comparison and Unicode normalization are carried over from
// the teacher's own use of golang.org/x/text (collate/language/norm)
// rather than reimplemented by hand.
type Strings struct {
	*plugins.Calculus
	collator *collate.Collator
}

// NewStrings builds the strings plugin with an x/text collator for
// Unicode-aware comparisons (golang.org/x/text/collate, the same
// library the teacher imports for its own SameText/CompareLocaleStr
// builtins).
func NewStrings() *Strings {
	s := &Strings{
		Calculus: plugins.NewCalculus("strings"),
		collator: collate.New(language.Und),
	}

	s.RegisterBinaryOp("+", value.String, value.String, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(args[0].AsString() + args[1].AsString()), nil
	}))

	s.registerCompare("<", func(cmp int) bool { return cmp < 0 })
	s.registerCompare("<=", func(cmp int) bool { return cmp <= 0 })
	s.registerCompare(">", func(cmp int) bool { return cmp > 0 })
	s.registerCompare(">=", func(cmp int) bool { return cmp >= 0 })

	s.RegisterFunction("Len", []value.Tag{value.String}, ctInfo(value.Int, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Integer(int64(len([]rune(args[0].AsString())))), nil
	}))
	s.RegisterFunction("UpperCase", []value.Tag{value.String}, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(strings.ToUpper(args[0].AsString())), nil
	}))
	s.RegisterFunction("LowerCase", []value.Tag{value.String}, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(strings.ToLower(args[0].AsString())), nil
	}))
	s.RegisterFunction("Trim", []value.Tag{value.String}, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(strings.TrimSpace(args[0].AsString())), nil
	}))
	s.RegisterFunction("StrContains", []value.Tag{value.String, value.String}, ctInfo(value.Bool, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(strings.Contains(args[0].AsString(), args[1].AsString())), nil
	}))
	s.RegisterFunction("StrBeginsWith", []value.Tag{value.String, value.String}, ctInfo(value.Bool, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil
	}))
	s.RegisterFunction("StrEndsWith", []value.Tag{value.String, value.String}, ctInfo(value.Bool, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(strings.HasSuffix(args[0].AsString(), args[1].AsString())), nil
	}))
	s.RegisterFunction("ReverseString", []value.Tag{value.String}, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		r := []rune(args[0].AsString())
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return value.Str(string(r)), nil
	}))
	s.RegisterFunction("NormalizeString", []value.Tag{value.String}, ctInfo(value.String, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(norm.NFC.String(args[0].AsString())), nil
	}))
	s.RegisterFunction("CompareLocaleStr", []value.Tag{value.String, value.String}, etInfo(value.Int, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Integer(int64(s.collator.CompareString(args[0].AsString(), args[1].AsString()))), nil
	}))

	intToStr := func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Str(strconv.FormatInt(args[0].AsInt(), 10)), nil
	}
	s.RegisterFunction("IntToStr", []value.Tag{value.Int}, ctInfo(value.String, intToStr))
	s.RegisterFunction("StrToInt", []value.Tag{value.String}, etInfo(value.Int, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		n, err := strconv.ParseInt(args[0].AsString(), 10, 64)
		if err != nil {
			return value.Value{}, err
		}
		return value.Integer(n), nil
	}))

	// spec.md §8 scenario 8: `true ? 1 : "x"` evaluates to the String
	// "1" — an Integer Then-branch auto-cast to String to match a
	// String Else-branch (and symmetrically the other way round).
	s.RegisterAutoCast(conditionalContext, value.Int, value.String, plugins.AutoCast{
		HasLHS: true, CastLHS: intToStr, CastLHSName: "IntToStr", CastLHSResult: value.String,
	})
	s.RegisterAutoCast(conditionalContext, value.String, value.Int, plugins.AutoCast{
		HasRHS: true, CastRHS: intToStr, CastRHSName: "IntToStr", CastRHSResult: value.String,
	})

	return s
}

// registerCompare registers a lexical (byte-order) String comparison
// operator, the same "<"/"<="/">"/">=" family internal/builtins's
// Arithmetic plugin already provides for Int/Float.
func (s *Strings) registerCompare(symbol string, test func(cmp int) bool) {
	s.RegisterBinaryOp(symbol, value.String, value.String, ctInfo(value.Bool, func(sc *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(test(strings.Compare(args[0].AsString(), args[1].AsString()))), nil
	}))
}
