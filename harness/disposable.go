package harness

// Disposable is a resource that must be released before its owning scope
// ends. Dispose never returns an error: implementations downgrade cleanup
// failures to log warnings so that disposing one resource cannot prevent
// disposing its siblings. Dispose is idempotent.
type Disposable interface {
	Dispose()
}
