package changelog

// Bullets is an insertion-ordered set of bullet strings.
type Bullets struct {
	items []string
	seen  map[string]struct{}
}

// NewBullets returns an empty set.
func NewBullets() *Bullets {
	return &Bullets{seen: make(map[string]struct{})}
}

// Add appends text unless an identical string is already present.
// It reports whether text was added.
func (b *Bullets) Add(text string) bool {
	if _, dup := b.seen[text]; dup {
		return false
	}
	b.seen[text] = struct{}{}
	b.items = append(b.items, text)
	return true
}

// Contains reports whether text is in the set.
func (b *Bullets) Contains(text string) bool {
	_, ok := b.seen[text]
	return ok
}

// Len returns the number of bullets.
func (b *Bullets) Len() int {
	return len(b.items)
}

// Items returns the bullets in first-seen order.
func (b *Bullets) Items() []string {
	out := make([]string, len(b.items))
	copy(out, b.items)
	return out
}

// Sections maps each category to its ordered bullet set. Iteration always
// follows Categories() order regardless of insertion order.
type Sections struct {
	byCategory [3]*Bullets
}

// NewSections returns empty sections for every category.
func NewSections() *Sections {
	s := &Sections{}
	for _, c := range Categories() {
		s.byCategory[c] = NewBullets()
	}
	return s
}

// Add records text under category c, dropping exact duplicates.
func (s *Sections) Add(c Category, text string) bool {
	return s.byCategory[c].Add(text)
}

// Bullets returns the bullets of category c in first-seen order.
func (s *Sections) Bullets(c Category) []string {
	return s.byCategory[c].Items()
}

// Len returns the number of bullets in category c.
func (s *Sections) Len(c Category) int {
	return s.byCategory[c].Len()
}

// Count returns the number of bullets across all categories.
func (s *Sections) Count() int {
	n := 0
	for _, b := range s.byCategory {
		n += b.Len()
	}
	return n
}

// NonEmpty returns the categories holding at least one bullet, in rendering order.
func (s *Sections) NonEmpty() []Category {
	var out []Category
	for _, c := range Categories() {
		if s.byCategory[c].Len() > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Categorize groups the release's commits by category. Commits are walked in
// release order (newest first); a description already recorded in the same
// category is dropped.
func Categorize(r *Release) {
	sections := NewSections()
	for _, c := range r.Commits {
		if !sections.Add(c.Category, c.Description) {
			logDebug("[changelog] %s: dropping duplicate %s bullet %q", r.Name(), c.Category, c.Description)
		}
	}
	r.Sections = sections
}
