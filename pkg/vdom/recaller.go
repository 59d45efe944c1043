package vdom

// Recaller issues and retires recall ids for event descriptors found
// on virtual nodes. The runtime's callback registry implements it.
type Recaller interface {
	// Bind registers a descriptor and returns the recall id to write
	// into the element's rid attribute.
	Bind(descriptor string) (string, error)

	// Retire drops the registration for a recall id whose node left
	// the document.
	Retire(rid string)
}
