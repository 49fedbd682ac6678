package kernel

import "fmt"

// UnknownCode is the sentinel returned when a recorded code is not a member of a taxonomy.
// It is never itself a member.
const UnknownCode = -1

// UnknownLabel is the label rendered for UnknownCode and for any non-member.
const UnknownLabel = "UNKNOWN"

// Member pairs an integer code with its label.
type Member[T ~int] struct {
	Code  T
	Label string
}

// Taxonomy is an ordered, immutable set of integer-coded values. The first
// member is the initial value of every asset governed by the taxonomy.
//
// Taxonomies are built once at package initialisation and shared read-only:
//
//	var Statuses = kernel.MustNewTaxonomy(
//	    kernel.Member[Status]{Code: ToBeConfirmed, Label: "TO_BE_CONFIRMED"},
//	    kernel.Member[Status]{Code: Confirmed, Label: "CONFIRMED"},
//	)
//
//	Statuses.Initial()    // ToBeConfirmed
//	Statuses.Resolve(1)   // Confirmed
//	Statuses.Resolve(42)  // Status(UnknownCode)
type Taxonomy[T ~int] struct {
	members []T
	labels  map[T]string
}

// MustNewTaxonomy builds a taxonomy from members in order.
// It panics on an empty member list, duplicate codes, or use of UnknownCode,
// all of which are programming errors.
func MustNewTaxonomy[T ~int](members ...Member[T]) Taxonomy[T] {
	if len(members) == 0 {
		panic("kernel: taxonomy requires at least one member")
	}

	t := Taxonomy[T]{
		members: make([]T, 0, len(members)),
		labels:  make(map[T]string, len(members)),
	}
	for _, m := range members {
		if int(m.Code) == UnknownCode {
			panic(fmt.Sprintf("kernel: code %d is reserved for UNKNOWN", UnknownCode))
		}
		if _, dup := t.labels[m.Code]; dup {
			panic(fmt.Sprintf("kernel: duplicate taxonomy code %d", m.Code))
		}
		t.members = append(t.members, m.Code)
		t.labels[m.Code] = m.Label
	}

	return t
}

// Initial returns the first member.
func (t Taxonomy[T]) Initial() T {
	return t.members[0]
}

// Unknown returns the UNKNOWN sentinel in the taxonomy's type.
func (t Taxonomy[T]) Unknown() T {
	return T(UnknownCode)
}

// Contains reports whether code is a member.
func (t Taxonomy[T]) Contains(code int) bool {
	_, ok := t.labels[T(code)]
	return ok
}

// Resolve returns the member with the given code, or Unknown when code is not a member.
func (t Taxonomy[T]) Resolve(code int) T {
	if t.Contains(code) {
		return T(code)
	}
	return t.Unknown()
}

// Label returns the label of v, or UnknownLabel for non-members.
func (t Taxonomy[T]) Label(v T) string {
	if label, ok := t.labels[v]; ok {
		return label
	}
	return UnknownLabel
}

// Members returns the members in declaration order.
func (t Taxonomy[T]) Members() []T {
	out := make([]T, len(t.members))
	copy(out, t.members)
	return out
}
