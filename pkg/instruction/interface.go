package instruction

// Source supplies the system instruction prepended to every completion
// request. Implementations are safe for concurrent use.
type Source interface {
	Instruction() string
}
