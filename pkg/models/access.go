package models

// AccessRequest describes the caller of a collection operation.
type AccessRequest struct {
	User          string
	Authenticated bool
}

// AccessFunc decides whether a request may perform an operation.
type AccessFunc func(AccessRequest) bool

// AccessPolicy holds per-operation rules. A nil rule falls back to the
// service default.
type AccessPolicy struct {
	Read   AccessFunc
	Create AccessFunc
	Update AccessFunc
	Delete AccessFunc
}

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// AllowAll permits every request.
func AllowAll(AccessRequest) bool { return true }

// Authenticated permits any logged in caller.
func Authenticated(req AccessRequest) bool { return req.Authenticated }

// Rule returns the rule for op, or Authenticated when none is declared.
func (p AccessPolicy) Rule(op Operation) AccessFunc {
	var fn AccessFunc
	switch op {
	case OpRead:
		fn = p.Read
	case OpCreate:
		fn = p.Create
	case OpUpdate:
		fn = p.Update
	case OpDelete:
		fn = p.Delete
	}
	if fn == nil {
		return Authenticated
	}
	return fn
}

// Allows reports whether req may perform op.
func (p AccessPolicy) Allows(op Operation, req AccessRequest) bool {
	return p.Rule(op)(req)
}
