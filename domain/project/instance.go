package project

// Instance is a database server living in exactly one environment.
type Instance struct {
	id          int64
	environment Environment
	name        string
	host        string
	port        int
}

// NewInstance creates an instance in the given environment.
func NewInstance(environment Environment, name, host string, port int) Instance {
	return Instance{environment: environment, name: name, host: host, port: port}
}

// ReconstructInstance rebuilds an Instance from persisted state.
func ReconstructInstance(id int64, environment Environment, name, host string, port int) Instance {
	return Instance{id: id, environment: environment, name: name, host: host, port: port}
}

// ID returns the instance ID.
func (i Instance) ID() int64 { return i.id }

// Environment returns the environment hosting this instance.
func (i Instance) Environment() Environment { return i.environment }

// EnvironmentID returns the hosting environment's ID.
func (i Instance) EnvironmentID() int64 { return i.environment.ID() }

// Name returns the instance name.
func (i Instance) Name() string { return i.name }

// Host returns the instance host.
func (i Instance) Host() string { return i.host }

// Port returns the instance port.
func (i Instance) Port() int { return i.port }
