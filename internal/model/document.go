package model

// Chapter is one ordered unit of narrative text, produced once at
// segmentation and immutable afterwards.
type Chapter struct {
	ID    int    `json:"chapter_id"` // Sequence number, 1-based, stable
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// Sentence belongs to exactly one Chapter. Sentence IDs are unique and
// strictly increasing across the whole document; ordinals are contiguous
// and monotonic within a chapter.
type Sentence struct {
	ID        int    `json:"sentence_id"`
	ChapterID int    `json:"chapter_id"`
	Ordinal   int    `json:"ordinal"` // Position within the chapter, 1-based
	Text      string `json:"text"`
}

// Token is a single annotated token with its part-of-speech tag
// (Penn Treebank tag set).
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Entity is a named-entity span found in a sentence.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"` // e.g. "PERSON", "GPE", "DATE"
}

// Annotation is the linguistic annotation for exactly one sentence.
// Read-only once produced.
type Annotation struct {
	SentenceID int      `json:"sentence_id"`
	Tokens     []Token  `json:"tokens"`
	Entities   []Entity `json:"entities,omitempty"`
}
