package receipt

// Renderer turns a laid-out receipt into an output document.
type Renderer interface {
	Render(r *Receipt) ([]byte, error)
	ContentType() string
}
