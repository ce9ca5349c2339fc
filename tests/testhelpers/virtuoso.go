package testhelpers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/docker/docker/api/types/container"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	virtuosoImage    = "openlink/virtuoso-opensource-7:latest"
	virtuosoPort     = "8890/tcp"
	virtuosoPassword = "dba"
	// virtuosoMemory is the container memory limit in bytes
	virtuosoMemory = 2 << 30
)

var _ tc.Container = (*VirtuosoContainer)(nil)

// VirtuosoContainer is a Virtuoso container with SPARQL updates enabled.
type VirtuosoContainer struct {
	tc.Container
	// ConnURL is the SPARQL endpoint URL reachable from the host
	ConnURL string
}

// NewVirtuosoContainer starts a Virtuoso container and waits until its
// SPARQL endpoint answers.
func NewVirtuosoContainer(ctx context.Context) (*VirtuosoContainer, error) {
	req := tc.ContainerRequest{
		Image:        virtuosoImage,
		ExposedPorts: []string{virtuosoPort},
		Env: map[string]string{
			"DBA_PASSWORD":  virtuosoPassword,
			"SPARQL_UPDATE": "true",
		},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Memory = virtuosoMemory
		},
		WaitingFor: wait.ForHTTP("/sparql").
			WithPort(virtuosoPort).
			WithStatusCodeMatcher(func(status int) bool { return status == http.StatusOK }).
			WithStartupTimeout(2 * time.Minute),
	}

	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		ProviderType:     GetContainerProvider(),
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := ctr.MappedPort(ctx, virtuosoPort)
	if err != nil {
		return nil, err
	}

	return &VirtuosoContainer{
		Container: ctr,
		ConnURL:   fmt.Sprintf("http://%s:%s/sparql", host, port.Port()),
	}, nil
}
