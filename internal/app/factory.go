package app

import (
	"fmt"

	rt "oneshot/internal/runtime"
	"oneshot/pkg/runtime"
)

// ContainerProvider resolves a runtime name from the config into a Container.
type ContainerProvider interface {
	GetContainer(name, binary string) (runtime.Container, error)
}

// ContainerFactory creates the concrete container adapters oneshot ships with.
type ContainerFactory struct{}

func NewContainerFactory() *ContainerFactory {
	return &ContainerFactory{}
}

// GetContainer returns the adapter for name. An empty binary keeps the adapter's
// default executable.
func (f *ContainerFactory) GetContainer(name, binary string) (runtime.Container, error) {
	switch name {
	case "", rt.DefaultBinary:
		return rt.NewPodman(rt.WithBinary(binary)), nil
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", name)
	}
}
