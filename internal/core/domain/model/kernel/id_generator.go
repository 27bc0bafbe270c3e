package kernel

// IDGenerator produces globally unique identifiers for entities constructed without one.
type IDGenerator interface {
	NewID() UUID
}

type randomIDGenerator struct{}

// NewRandomIDGenerator returns a generator backed by NewUUID.
func NewRandomIDGenerator() IDGenerator {
	return randomIDGenerator{}
}

func (randomIDGenerator) NewID() UUID {
	return NewUUID()
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() UUID

func (f IDGeneratorFunc) NewID() UUID {
	return f()
}
