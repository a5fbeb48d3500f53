package domain

// ValueObject is an immutable concept compared by its attributes rather
// than by identity. Date is the canonical implementation.
type ValueObject interface {
	Equals(other ValueObject) bool
}
