package lsp

// builtinDocs maps builtin function names to the hover documentation shown
// for them. It covers the core language builtins and the editor builtins;
// special forms and user definitions get no hover.
var builtinDocs = map[string]string{
	// Special forms.
	"if":       "```\n(if cond then else?)\n```\n\nEvaluates `cond`; if it is truthy, evaluates and returns `then`, otherwise `else` (or `nil`).",
	"let":      "```\n(let ((name value)...) body...)\n```\n\nEvaluates `body` with the given bindings in scope; returns the last form.",
	"lambda":   "```\n(lambda (params...) body...)\n```\n\nReturns an anonymous function closing over the current environment.",
	"defun":    "```\n(defun name (params...) body...)\n```\n\nDefines a named function in the global environment.",
	"defmacro": "```\n(defmacro name (params...) body...)\n```\n\nDefines a macro; its body receives arguments unevaluated and returns a form to evaluate.",
	"set!":     "```\n(set! name value)\n```\n\nAssigns to an existing binding, searching enclosing environments outwards.",
	"quote":    "```\n(quote form)\n```\n\nReturns `form` without evaluating it. Usually written `'form`.",

	// Numbers.
	"+":  "```\n(+ nums...)\n```\n\nReturns the sum of its arguments; `(+)` is 0.",
	"-":  "```\n(- num nums...)\n```\n\nSubtraction; with one argument, negation.",
	"*":  "```\n(* nums...)\n```\n\nReturns the product of its arguments; `(*)` is 1.",
	"/":  "```\n(/ num nums...)\n```\n\nDivision; with one argument, the reciprocal.",
	"=":  "```\n(= a b...)\n```\n\nNumeric equality over all arguments.",
	"<":  "```\n(< a b...)\n```\n\nTrue if the arguments are strictly increasing.",
	">":  "```\n(> a b...)\n```\n\nTrue if the arguments are strictly decreasing.",
	"<=": "```\n(<= a b...)\n```\n\nTrue if the arguments are non-decreasing.",
	">=": "```\n(>= a b...)\n```\n\nTrue if the arguments are non-increasing.",

	// Lists.
	"list":   "```\n(list elems...)\n```\n\nReturns a list of its arguments.",
	"cons":   "```\n(cons elem list)\n```\n\nReturns a new list with `elem` prepended.",
	"car":    "```\n(car list)\n```\n\nReturns the first element of a non-empty list.",
	"cdr":    "```\n(cdr list)\n```\n\nReturns the list without its first element.",
	"length": "```\n(length list)\n```\n\nReturns the number of elements.",
	"append": "```\n(append lists...)\n```\n\nConcatenates lists into a new list.",
	"nth":    "```\n(nth n list)\n```\n\nReturns the element at index `n` (0-based).",

	// Strings.
	"concat":         "```\n(concat strs...)\n```\n\nConcatenates strings.",
	"substring":      "```\n(substring str from upto)\n```\n\nReturns the substring at rune indices [from, upto).",
	"string-length":  "```\n(string-length str)\n```\n\nReturns the number of runes in `str`.",
	"string-split":   "```\n(string-split str sep)\n```\n\nSplits `str` around `sep` into a list of strings.",
	"string->number": "```\n(string->number str)\n```\n\nParses `str` as a number; `nil` if it is not one.",
	"number->string": "```\n(number->string num)\n```\n\nFormats a number as a string.",
	"string=?":       "```\n(string=? a b)\n```\n\nString equality.",

	// Predicates.
	"null?":    "```\n(null? v)\n```\n\nTrue if `v` is nil.",
	"list?":    "```\n(list? v)\n```\n\nTrue if `v` is a list.",
	"number?":  "```\n(number? v)\n```\n\nTrue if `v` is a number.",
	"string?":  "```\n(string? v)\n```\n\nTrue if `v` is a string.",
	"symbol?":  "```\n(symbol? v)\n```\n\nTrue if `v` is a symbol.",
	"hashmap?": "```\n(hashmap? v)\n```\n\nTrue if `v` is a hashmap.",
	"eq?":      "```\n(eq? a b)\n```\n\nStructural equality.",
	"not":      "```\n(not v)\n```\n\nLogical negation.",

	// Hashmaps.
	"hashmap":          "```\n(hashmap k v ...)\n```\n\nReturns an immutable hashmap of the given pairs.",
	"hashmap-get":      "```\n(hashmap-get map key)\n```\n\nReturns the value for `key`, or `nil` if absent.",
	"hashmap-set":      "```\n(hashmap-set map key value)\n```\n\nReturns a new hashmap with the pair added; the original is unchanged.",
	"hashmap-remove":   "```\n(hashmap-remove map key)\n```\n\nReturns a new hashmap without `key`.",
	"hashmap-keys":     "```\n(hashmap-keys map)\n```\n\nReturns the keys as a sorted list.",
	"hashmap-values":   "```\n(hashmap-values map)\n```\n\nReturns the values, ordered by key.",
	"hashmap-has-key?": "```\n(hashmap-has-key? map key)\n```\n\nTrue if `key` is present.",
	"hashmap-size":     "```\n(hashmap-size map)\n```\n\nReturns the number of pairs.",

	// Misc.
	"print": "```\n(print vals...)\n```\n\nPrints the values to the interpreter's output.",
	"str":   "```\n(str vals...)\n```\n\nReturns the display form of the values, concatenated.",

	// Editor builtins, available when the script runs inside the editor.
	"key-bind":           "```\n(key-bind key command mode?)\n```\n\nBinds a key sequence to a command string; with no mode, the binding applies in every mode.",
	"keymap-set":         "```\n(keymap-set mode key command)\n```\n\nAdds a binding to the `*keymaps*` hashmap; these take precedence over native bindings.",
	"editor-set-mode":    "```\n(editor-set-mode mode)\n```\n\nSwitches to \"normal\", \"insert\", \"command\" or \"mx\".",
	"editor-mode":        "```\n(editor-mode)\n```\n\nReturns the current mode name.",
	"editor-status":      "```\n(editor-status text)\n```\n\nSets the status line message.",
	"editor-quit":        "```\n(editor-quit)\n```\n\nQuits the editor.",
	"editor-open":        "```\n(editor-open path)\n```\n\nOpens a file into a buffer and switches to it.",
	"editor-save":        "```\n(editor-save)\n```\n\nSaves the current buffer to its file.",
	"buffer-insert":      "```\n(buffer-insert text)\n```\n\nInserts text at the cursor.",
	"buffer-delete-char": "```\n(buffer-delete-char)\n```\n\nDeletes the character before the cursor.",
	"buffer-line":        "```\n(buffer-line n)\n```\n\nReturns line `n` of the current buffer.",
	"buffer-content":     "```\n(buffer-content)\n```\n\nReturns the full text of the current buffer.",
	"buffer-line-count":  "```\n(buffer-line-count)\n```\n\nReturns the number of lines in the current buffer.",
	"buffer-switch":      "```\n(buffer-switch name)\n```\n\nSwitches to a named buffer.",
	"buffer-list":        "```\n(buffer-list)\n```\n\nReturns the buffer names as a list.",
	"cursor-line":        "```\n(cursor-line)\n```\n\nReturns the cursor's line (0-based).",
	"cursor-col":         "```\n(cursor-col)\n```\n\nReturns the cursor's column (0-based).",
	"cursor-move":        "```\n(cursor-move line col)\n```\n\nMoves the cursor to an in-range position; errors if out of range.",
	"cursor-up":          "```\n(cursor-up)\n```\n\nMoves the cursor up one line, clamping at the first line.",
	"cursor-down":        "```\n(cursor-down)\n```\n\nMoves the cursor down one line, clamping at the last line.",
	"cursor-left":        "```\n(cursor-left)\n```\n\nMoves the cursor left, clamping at the line start.",
	"cursor-right":       "```\n(cursor-right)\n```\n\nMoves the cursor right, clamping at the line end.",
	"cursor-line-start":  "```\n(cursor-line-start)\n```\n\nMoves the cursor to column 0.",
	"cursor-line-end":    "```\n(cursor-line-end)\n```\n\nMoves the cursor past the last character of the line.",
	"mx-history":         "```\n(mx-history n?)\n```\n\nReturns the most recent M-x commands, newest last.",
}
