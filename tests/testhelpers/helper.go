// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"fmt"
	"os/exec"

	"github.com/testcontainers/testcontainers-go"
)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}
