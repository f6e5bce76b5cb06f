package model

// ItemKind says where a highlight came from.
type ItemKind string

const (
	ItemKindComment   ItemKind = "comment"
	ItemKindKeyword   ItemKind = "keyword"
	ItemKindPlainText ItemKind = "plaintext"
)

// Span is one range as 1-based line/column plus byte offsets. Columns count
// bytes; display columns are computed by the output layer.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Item is one highlighted range in a file. Keyword items carry no category
// or key; MethodModifier marks keywords of a method declaration.
type Item struct {
	File           string         `json:"file"`
	Lang           string         `json:"lang,omitempty"`
	Kind           ItemKind       `json:"kind"`
	Category       string         `json:"category,omitempty"`
	Token          string         `json:"token,omitempty"`
	Key            string         `json:"key,omitempty"`
	Text           string         `json:"text"`
	MethodModifier bool           `json:"method_modifier,omitempty"`
	Span           Span           `json:"span"`
}
