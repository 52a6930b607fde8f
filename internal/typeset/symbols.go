package typeset

// Symbol tables for control sequences that take no arguments.

// letters render as identifiers; lowercase Greek stays italic.
var letters = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"omicron": "ο", "pi": "π", "varpi": "ϖ", "rho": "ρ", "varrho": "ϱ",
	"sigma": "σ", "varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "ϕ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"ell": "ℓ", "imath": "ı", "jmath": "ȷ",
}

// uprightLetters render as identifiers with mathvariant="normal".
var uprightLetters = map[string]string{
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ",
	"Omega": "Ω",
	"infty": "∞", "partial": "∂", "nabla": "∇", "emptyset": "∅",
	"varnothing": "∅", "hbar": "ℏ", "aleph": "ℵ", "Re": "ℜ", "Im": "ℑ",
	"wp": "℘", "forall": "∀", "exists": "∃", "nexists": "∄", "neg": "¬",
	"lnot": "¬", "top": "⊤", "bot": "⊥", "angle": "∠", "triangle": "△",
	"%": "%", "$": "$", "#": "#", "&": "&", "_": "_",
}

// operators render as <mo>.
var operators = map[string]string{
	"cdot": "⋅", "times": "×", "div": "÷", "pm": "±", "mp": "∓", "ast": "∗",
	"star": "⋆", "circ": "∘", "bullet": "∙", "oplus": "⊕", "ominus": "⊖",
	"otimes": "⊗", "oslash": "⊘", "odot": "⊙", "cup": "∪", "cap": "∩",
	"setminus": "∖", "wedge": "∧", "land": "∧", "vee": "∨", "lor": "∨",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"ll": "≪", "gg": "≫", "approx": "≈", "equiv": "≡", "sim": "∼",
	"simeq": "≃", "cong": "≅", "propto": "∝", "in": "∈", "notin": "∉",
	"ni": "∋", "subset": "⊂", "supset": "⊃", "subseteq": "⊆",
	"supseteq": "⊇", "mid": "∣", "parallel": "∥", "perp": "⊥",
	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←",
	"leftrightarrow": "↔", "Rightarrow": "⇒", "Leftarrow": "⇐",
	"Leftrightarrow": "⇔", "implies": "⟹", "iff": "⟺", "mapsto": "↦",
	"colon": ":", "ldots": "…", "dots": "…", "cdots": "⋯", "vdots": "⋮",
	"ddots": "⋱", "prime": "′", "{": "{", "}": "}", "|": "∥",
	"langle": "⟨", "rangle": "⟩", "lfloor": "⌊", "rfloor": "⌋",
	"lceil": "⌈", "rceil": "⌉", "vert": "|", "Vert": "∥",
	"lvert": "|", "rvert": "|", "lVert": "∥", "rVert": "∥",
	"backslash": "\\",
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫", "iint": "∬",
	"iiint": "∭", "oint": "∮", "bigcup": "⋃", "bigcap": "⋂",
	"bigoplus": "⨁", "bigotimes": "⨂",
}

// spaces maps spacing commands to mspace widths.
var spaces = map[string]string{
	",": "0.1667em", "thinspace": "0.1667em", ":": "0.2222em", ">": "0.2222em",
	"medspace": "0.2222em", ";": "0.2778em", "thickspace": "0.2778em",
	"!": "-0.1667em", "negthinspace": "-0.1667em", " ": "0.3333em",
	"quad": "1em", "qquad": "2em", "enspace": "0.5em",
}

// ignored are style switches with no MathML effect at this level.
var ignored = map[string]bool{
	"displaystyle": true, "textstyle": true, "scriptstyle": true,
	"scriptscriptstyle": true, "limits": true, "nolimits": true,
	"nonumber": true, "notag": true,
}

// fonts map font commands to mathvariant values.
var fonts = map[string]string{
	"mathrm": "normal", "mathit": "italic", "mathbf": "bold",
	"mathbb": "double-struck", "mathcal": "script", "mathscr": "script",
	"mathsf": "sans-serif", "mathtt": "monospace", "mathfrak": "fraktur",
	"boldsymbol": "bold-italic", "bm": "bold-italic", "mathnormal": "",
}

// textFonts map text-mode commands to mathvariant values for <mtext>.
var textFonts = map[string]string{
	"text": "", "textrm": "", "mbox": "", "textnormal": "",
	"textit": "italic", "textbf": "bold", "textsf": "sans-serif",
	"texttt": "monospace",
}

type accent struct {
	mark     string
	stretchy bool
	under    bool
}

var accents = map[string]accent{
	"bar": {mark: "ˉ"}, "hat": {mark: "^"}, "tilde": {mark: "~"},
	"vec": {mark: "⃗"}, "dot": {mark: "˙"}, "ddot": {mark: "¨"},
	"check": {mark: "ˇ"}, "acute": {mark: "ˊ"}, "grave": {mark: "ˋ"},
	"breve": {mark: "˘"},

	"overline":       {mark: "‾", stretchy: true},
	"widehat":        {mark: "^", stretchy: true},
	"widetilde":      {mark: "~", stretchy: true},
	"overrightarrow": {mark: "→", stretchy: true},
	"underline":      {mark: "_", stretchy: true, under: true},
}

// charOperators maps single characters that render as <mo> in math mode.
var charOperators = map[string]string{
	"+": "+", "-": "−", "*": "∗", "/": "/", "=": "=", "<": "<", ">": ">",
	",": ",", ";": ";", ":": ":", "!": "!", "?": "?", "(": "(", ")": ")",
	"[": "[", "]": "]", "|": "|", ".": ".", "'": "′", "@": "@", "\"": "\"",
	"`": "‘",
}

// delimiterChars lists what may follow \left, \right and the \big family.
var delimiterChars = map[string]string{
	"(": "(", ")": ")", "[": "[", "]": "]", "|": "|", "/": "/", "<": "⟨",
	">": "⟩", ".": "",
}

var delimiterCommands = map[string]string{
	"{": "{", "}": "}", "langle": "⟨", "rangle": "⟩", "lvert": "|",
	"rvert": "|", "vert": "|", "lVert": "∥", "rVert": "∥", "Vert": "∥",
	"|": "∥", "lfloor": "⌊", "rfloor": "⌋", "lceil": "⌈", "rceil": "⌉",
	"backslash": "\\", "uparrow": "↑", "downarrow": "↓",
}

var sizedDelimiters = map[string]bool{
	"big": true, "Big": true, "bigg": true, "Bigg": true,
	"bigl": true, "Bigl": true, "biggl": true, "Biggl": true,
	"bigr": true, "Bigr": true, "biggr": true, "Biggr": true,
}

// fence holds the delimiters drawn around a matrix-like environment.
type fence struct{ open, close string }

var environments = map[string]fence{
	"matrix":      {},
	"smallmatrix": {},
	"aligned":     {},
	"align":       {},
	"align*":      {},
	"gathered":    {},
	"array":       {},
	"pmatrix":     {open: "(", close: ")"},
	"bmatrix":     {open: "[", close: "]"},
	"Bmatrix":     {open: "{", close: "}"},
	"vmatrix":     {open: "|", close: "|"},
	"Vmatrix":     {open: "∥", close: "∥"},
	"cases":       {open: "{"},
	"rcases":      {close: "}"},
}
