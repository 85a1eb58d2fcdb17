package evaluator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/o2l-lang/o2l/internal/ast"
	"github.com/o2l-lang/o2l/internal/object"
)

// textIntrinsic implements the Text method table of spec §4.6: numeric
// parsing, case transforms, search/predicate/strip/format helpers. Grounded
// on Python's str method set, which the original language's Text intrinsics
// were themselves modeled on.
func (ev *Evaluator) textIntrinsic(n *ast.MethodCall, recv *object.Text, method string, args []object.Value) (object.Value, error) {
	s := recv.V

	switch method {
	case "length":
		return &object.Int{V: int32(len([]rune(s)))}, nil
	case "toInt":
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, ev.evalErr(n, "cannot convert %q to Int", s)
		}
		return &object.Int{V: int32(i)}, nil
	case "toLong":
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, ev.evalErr(n, "cannot convert %q to Long", s)
		}
		return &object.Long{V: i}, nil
	case "toFloat":
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return nil, ev.evalErr(n, "cannot convert %q to Float", s)
		}
		return &object.Float{V: float32(f)}, nil
	case "toDouble":
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, ev.evalErr(n, "cannot convert %q to Double", s)
		}
		return &object.Double{V: f}, nil
	case "toBool":
		return &object.Bool{V: s == "true"}, nil

	case "upper":
		return &object.Text{V: strings.ToUpper(s)}, nil
	case "lower":
		return &object.Text{V: strings.ToLower(s)}, nil
	case "capitalize":
		if s == "" {
			return &object.Text{V: s}, nil
		}
		r := []rune(s)
		return &object.Text{V: string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))}, nil
	case "title":
		return &object.Text{V: strings.Title(strings.ToLower(s))}, nil
	case "caseFold":
		return &object.Text{V: strings.ToLower(s)}, nil
	case "swapCase":
		return &object.Text{V: swapCase(s)}, nil

	case "find":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		return &object.Int{V: int32(strings.Index(s, sub))}, nil
	case "rfind":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		return &object.Int{V: int32(strings.LastIndex(s, sub))}, nil
	case "index":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s, sub)
		if idx < 0 {
			return nil, ev.evalErr(n, "substring %q not found", sub)
		}
		return &object.Int{V: int32(idx)}, nil
	case "rindex":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		idx := strings.LastIndex(s, sub)
		if idx < 0 {
			return nil, ev.evalErr(n, "substring %q not found", sub)
		}
		return &object.Int{V: int32(idx)}, nil
	case "count":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		return &object.Int{V: int32(strings.Count(s, sub))}, nil
	case "startswith":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		return &object.Bool{V: strings.HasPrefix(s, sub)}, nil
	case "endswith":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sub, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		return &object.Bool{V: strings.HasSuffix(s, sub)}, nil

	case "isAlpha":
		return &object.Bool{V: s != "" && allRunes(s, unicode.IsLetter)}, nil
	case "isDigit":
		return &object.Bool{V: s != "" && allRunes(s, unicode.IsDigit)}, nil
	case "isAlnum":
		return &object.Bool{V: s != "" && allRunes(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })}, nil
	case "isLower":
		return &object.Bool{V: s != "" && s == strings.ToLower(s) && s != strings.ToUpper(s)}, nil
	case "isUpper":
		return &object.Bool{V: s != "" && s == strings.ToUpper(s) && s != strings.ToLower(s)}, nil
	case "isSpace":
		return &object.Bool{V: s != "" && allRunes(s, unicode.IsSpace)}, nil
	case "isPrintable":
		return &object.Bool{V: allRunes(s, unicode.IsPrint)}, nil
	case "isAscii":
		return &object.Bool{V: allRunes(s, func(r rune) bool { return r < 128 })}, nil
	case "isIdentifier":
		return &object.Bool{V: isIdentifierText(s)}, nil
	case "isDecimal":
		return &object.Bool{V: s != "" && allRunes(s, unicode.IsDigit)}, nil
	case "isNumeric":
		return &object.Bool{V: s != "" && allRunes(s, unicode.IsNumber)}, nil
	case "isTitle":
		return &object.Bool{V: s != "" && s == strings.Title(strings.ToLower(s))}, nil

	case "strip":
		return &object.Text{V: strings.TrimSpace(s)}, nil
	case "lstrip":
		return &object.Text{V: strings.TrimLeft(s, " \t\n\r")}, nil
	case "rstrip":
		return &object.Text{V: strings.TrimRight(s, " \t\n\r")}, nil

	case "replace":
		if err := ev.arity(n, method, args, 2); err != nil {
			return nil, err
		}
		old, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		nw, err := textArg(n, ev, method, args, 1)
		if err != nil {
			return nil, err
		}
		return &object.Text{V: strings.ReplaceAll(s, old, nw)}, nil

	case "split":
		sep := " "
		if len(args) == 1 {
			var err error
			sep, err = textArg(n, ev, method, args, 0)
			if err != nil {
				return nil, err
			}
		}
		parts := strings.Split(s, sep)
		items := make([]object.Value, len(parts))
		for i, p := range parts {
			items[i] = &object.Text{V: p}
		}
		return &object.List{ElemKind: object.KText, Items: items}, nil

	case "splitlines":
		parts := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		items := make([]object.Value, len(parts))
		for i, p := range parts {
			items[i] = &object.Text{V: p}
		}
		return &object.List{ElemKind: object.KText, Items: items}, nil

	case "center", "ljust", "rjust":
		if len(args) < 1 {
			return nil, ev.evalErr(n, "%s expects a width argument", method)
		}
		width, ok := args[0].(*object.Int)
		if !ok {
			return nil, ev.typeErr(n, "%s width must be Int", method)
		}
		pad := " "
		if len(args) > 1 {
			var err error
			pad, err = textArg(n, ev, method, args, 1)
			if err != nil {
				return nil, err
			}
		}
		return &object.Text{V: justify(s, int(width.V), pad, method)}, nil

	case "zfill":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		width, ok := args[0].(*object.Int)
		if !ok {
			return nil, ev.typeErr(n, "zfill width must be Int")
		}
		return &object.Text{V: zfill(s, int(width.V))}, nil

	case "join":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		list, ok := args[0].(*object.List)
		if !ok {
			return nil, ev.typeErr(n, "join expects a List argument")
		}
		parts := make([]string, len(list.Items))
		for i, it := range list.Items {
			t, ok := it.(*object.Text)
			if !ok {
				return nil, ev.typeErr(n, "join: element %d is not Text", i)
			}
			parts[i] = t.V
		}
		return &object.Text{V: strings.Join(parts, s)}, nil

	case "partition":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sep, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		before, after, found := strings.Cut(s, sep)
		sepOut := sep
		if !found {
			sepOut, after = "", ""
		}
		return &object.List{ElemKind: object.KText, Items: []object.Value{
			&object.Text{V: before}, &object.Text{V: sepOut}, &object.Text{V: after},
		}}, nil

	case "rpartition":
		if err := ev.arity(n, method, args, 1); err != nil {
			return nil, err
		}
		sep, err := textArg(n, ev, method, args, 0)
		if err != nil {
			return nil, err
		}
		idx := strings.LastIndex(s, sep)
		if idx < 0 {
			return &object.List{ElemKind: object.KText, Items: []object.Value{
				&object.Text{V: ""}, &object.Text{V: ""}, &object.Text{V: s},
			}}, nil
		}
		return &object.List{ElemKind: object.KText, Items: []object.Value{
			&object.Text{V: s[:idx]}, &object.Text{V: sep}, &object.Text{V: s[idx+len(sep):]},
		}}, nil

	default:
		return nil, ev.refErr(n, "Text has no method '%s'", method)
	}
}

func allRunes(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

func isIdentifierText(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if i > 0 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func swapCase(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			sb.WriteRune(unicode.ToUpper(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func justify(s string, width int, pad, mode string) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	switch mode {
	case "ljust":
		return s + strings.Repeat(pad, n)
	case "rjust":
		return strings.Repeat(pad, n) + s
	default: // center
		left := n / 2
		right := n - left
		return strings.Repeat(pad, left) + s + strings.Repeat(pad, right)
	}
}

func zfill(s string, width int) string {
	neg := strings.HasPrefix(s, "-")
	body := s
	if neg {
		body = s[1:]
	}
	for len(body)+boolToInt(neg) < width {
		body = "0" + body
	}
	if neg {
		return "-" + body
	}
	return body
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
