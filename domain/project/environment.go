package project

// Environment is a deployment tier (for example dev, staging, prod).
// Stage rollout order follows the environment display order.
type Environment struct {
	id    int64
	name  string
	order int
}

// NewEnvironment creates an environment with the given name and display order.
func NewEnvironment(name string, order int) Environment {
	return Environment{name: name, order: order}
}

// ReconstructEnvironment rebuilds an Environment from persisted state.
func ReconstructEnvironment(id int64, name string, order int) Environment {
	return Environment{id: id, name: name, order: order}
}

// ID returns the environment ID.
func (e Environment) ID() int64 { return e.id }

// Name returns the environment name.
func (e Environment) Name() string { return e.name }

// Order returns the display/rollout order.
func (e Environment) Order() int { return e.order }
