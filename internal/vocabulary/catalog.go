package vocabulary

// Catalog is the ordered, read-only word list of a session.
// Order is the source order; navigation indexes depend on it.
type Catalog struct {
	words []Word
	index map[string]int
}

// NewCatalog builds a catalog over words. When ids collide, the first entry wins for lookups.
func NewCatalog(words []Word) *Catalog {
	index := make(map[string]int, len(words))
	for i, w := range words {
		if _, ok := index[w.ID]; ok {
			continue
		}
		index[w.ID] = i
	}
	return &Catalog{
		words: append([]Word{}, words...),
		index: index,
	}
}

// NewCatalogFromRaw normalizes raw records into a catalog.
func NewCatalogFromRaw(raws []RawWord) *Catalog {
	return NewCatalog(Normalize(raws))
}

// Words returns a copy of the words in catalog order.
func (c *Catalog) Words() []Word {
	return append([]Word{}, c.words...)
}

func (c *Catalog) Len() int {
	return len(c.words)
}

func (c *Catalog) IsEmpty() bool {
	return len(c.words) == 0
}

// At returns the word at position i. It panics when i is out of range.
func (c *Catalog) At(i int) Word {
	return c.words[i]
}

// FindByID returns the word with the given id.
func (c *Catalog) FindByID(id string) (Word, bool) {
	i, ok := c.index[id]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}

// Title returns the display text of a word, or the id itself for an unknown word.
func (c *Catalog) Title(id string) string {
	if w, ok := c.FindByID(id); ok {
		return w.Word
	}
	return id
}
