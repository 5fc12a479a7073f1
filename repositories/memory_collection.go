package repositories

import (
	"sync"

	"github.com/Dosada05/community-tournaments/models"
)

// memoryCollection хранит копии документов, поэтому вызывающий код никогда не
// получает ссылку на сохраненное значение. Версии ведутся так же, как в Postgres.
type memoryCollection[T any] struct {
	mu    sync.RWMutex
	docs  map[string]*T
	order []string

	id      func(*T) string
	version func(*T) *int // nil for unversioned collections
	clone   func(*T) *T
}

func newMemoryCollection[T any](id func(*T) string, version func(*T) *int, clone func(*T) *T) *memoryCollection[T] {
	return &memoryCollection[T]{
		docs:    make(map[string]*T),
		id:      id,
		version: version,
		clone:   clone,
	}
}

func (c *memoryCollection[T]) get(id string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	return c.clone(doc), true
}

func (c *memoryCollection[T]) find(match func(*T) bool) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if doc := c.docs[id]; match(doc) {
			return c.clone(doc), true
		}
	}
	return nil, false
}

// filter returns copies in insertion order; a nil match selects everything.
func (c *memoryCollection[T]) filter(match func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		if match == nil || match(doc) {
			out = append(out, *c.clone(doc))
		}
	}
	return out
}

func (c *memoryCollection[T]) insert(doc *T, unique func(existing, doc *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkUnique(doc, unique); err != nil {
		return err
	}
	id := c.id(doc)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	if c.version != nil {
		*c.version(doc) = 1
	}
	c.docs[id] = c.clone(doc)
	return nil
}

func (c *memoryCollection[T]) update(doc *T, notFound error, unique func(existing, doc *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(doc)
	stored, ok := c.docs[id]
	if !ok {
		return notFound
	}
	if c.version != nil && *c.version(stored) != *c.version(doc) {
		return models.ErrVersionConflict
	}
	if err := c.checkUnique(doc, unique); err != nil {
		return err
	}
	if c.version != nil {
		*c.version(doc)++
	}
	c.docs[id] = c.clone(doc)
	return nil
}

func (c *memoryCollection[T]) remove(id string, notFound error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return notFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memoryCollection[T]) checkUnique(doc *T, unique func(existing, doc *T) error) error {
	if unique == nil {
		return nil
	}
	id := c.id(doc)
	for otherID, existing := range c.docs {
		if otherID == id {
			continue
		}
		if err := unique(existing, doc); err != nil {
			return err
		}
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
