package testutil

import (
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
)

func TestEndpoint_Addr(t *testing.T) {
	ep := Endpoint{Host: "localhost", Port: nat.Port("5432/tcp").Port()}
	assert.Equal(t, "localhost:5432", ep.Addr())
}

func TestMongoContainer_URI(t *testing.T) {
	c := &MongoContainer{Endpoint: Endpoint{Host: "127.0.0.1", Port: "27017"}}
	assert.Equal(t, "mongodb://127.0.0.1:27017", c.URI())
}
