package blog

import "fmt"

// RelationKind names one of the relations resolved during enrichment.
type RelationKind string

const (
	RelationMedia      RelationKind = "media"
	RelationAuthor     RelationKind = "author"
	RelationCategories RelationKind = "categories"
)

// Relation is the outcome of resolving one relation of a post. A relation is
// either resolved to a value or unresolved. An unresolved relation with a nil
// Err is simply absent, e.g. a post without a featured image.
type Relation[T any] struct {
	value    T
	err      error
	resolved bool
}

// Resolved returns a relation holding v.
func Resolved[T any](v T) Relation[T] {
	return Relation[T]{value: v, resolved: true}
}

// Unresolved returns a relation that could not be resolved because of cause.
// A nil cause marks the relation as absent.
func Unresolved[T any](cause error) Relation[T] {
	return Relation[T]{err: cause}
}

// Get returns the value and whether the relation was resolved.
func (r Relation[T]) Get() (T, bool) {
	return r.value, r.resolved
}

// Err returns the cause of a failed resolution, nil otherwise.
func (r Relation[T]) Err() error {
	return r.err
}

// RelationWarning records a relation that failed to resolve. Warnings never
// fail an operation; the relation is left in its empty state instead.
type RelationWarning struct {
	PostID   int64
	Relation RelationKind
	Err      error
}

func (w RelationWarning) String() string {
	return fmt.Sprintf("post %d: resolving %s: %v", w.PostID, w.Relation, w.Err)
}
