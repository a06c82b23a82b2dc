// A Dagger module with the CI functions of sdg
//
// The functions here build and test sdg inside containers, so local runs
// and CI runs go through the exact same steps. Call them from the dagger
// CLI, for example:
//
//	dagger call test --source=.
//	dagger call build --source=. --os=linux --arch=amd64 export --path=build/sdg

package main

import (
	"context"
	"dagger/sdg-ci/internal/dagger"
	"fmt"
)

const goImage = "golang:1.23"

type SdgCi struct{}

// Returns a container that echoes whatever string argument is provided
func (m *SdgCi) ContainerEcho(stringArg string) *dagger.Container {
	return dag.Container().From("alpine:latest").WithExec([]string{"echo", stringArg})
}

func (m *SdgCi) base(source *dagger.Directory) *dagger.Container {
	return dag.Container().
		From(goImage).
		WithMountedDirectory("/src", source).
		WithWorkdir("/src").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod-cache")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build-cache")).
		WithEnvVariable("CGO_ENABLED", "0")
}

// Run the test suite
func (m *SdgCi) Test(ctx context.Context, source *dagger.Directory) (string, error) {
	return m.base(source).
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}

// Run go vet over the whole module
func (m *SdgCi) Vet(ctx context.Context, source *dagger.Directory) (string, error) {
	return m.base(source).
		WithExec([]string{"go", "vet", "./..."}).
		Stdout(ctx)
}

// Build the sdg binary for the given platform
func (m *SdgCi) Build(source *dagger.Directory, os string, arch string) *dagger.File {
	name := "sdg"
	if os == "windows" {
		name = "sdg.exe"
	}
	return m.base(source).
		WithEnvVariable("GOOS", os).
		WithEnvVariable("GOARCH", arch).
		WithExec([]string{"go", "build", "-o", "/out/" + name, "./cmd/sdg"}).
		File("/out/" + name)
}

// Build sdg for every released platform and collect the binaries
func (m *SdgCi) BuildAll(source *dagger.Directory) *dagger.Directory {
	targets := []struct{ os, arch string }{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
	}
	out := dag.Directory()
	for _, target := range targets {
		suffix := ""
		if target.os == "windows" {
			suffix = ".exe"
		}
		name := fmt.Sprintf("sdg-%s-%s%s", target.os, target.arch, suffix)
		out = out.WithFile(name, m.Build(source, target.os, target.arch))
	}
	return out
}
