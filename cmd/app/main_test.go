package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCommand(t *testing.T) {
	root := newRootCommand("1.2.3")

	names := []string{}
	for _, cmd := range root.Commands {
		names = append(names, cmd.Name)
	}

	assert.Equal(t, "cache-vault", root.Name)
	assert.Equal(t, "1.2.3", root.Version)
	assert.Equal(t, []string{"server", "migrate", "save", "fetch", "delete", "delete-key"}, names)
}
