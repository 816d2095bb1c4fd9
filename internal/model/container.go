package model

// Container is a running container that processes can be attributed to
type Container struct {
	ID   string // full 64 character ID
	Name string
}

// ShortID returns the 12 character form shown by the docker CLI
func (c Container) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}
