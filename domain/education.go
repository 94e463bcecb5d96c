package domain

// A Term is a glossary entry.
type Term struct {
	Term         string   `json:"term" validate:"required"`
	Definition   string   `json:"definition"`
	Example      string   `json:"example"`
	RelatedTerms []string `json:"related_terms"`
}

// A Tip is a short piece of investing advice.
type Tip struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
}
