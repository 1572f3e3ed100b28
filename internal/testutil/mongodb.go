//go:build integration

// Package testutil provides testcontainers setup for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoDBImage is the image used for journal integration tests.
const MongoDBImage = "mongo:7.0"

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, MongoDBImage)
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
)

// SetupTestMainWithMongoDB starts one container for a whole test package.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	sharedOnce.Do(func() {
		shared, sharedErr = SetupMongoDB(ctx)
	})
	if sharedErr != nil {
		panic(sharedErr)
	}

	code := m.Run()

	if err := shared.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to cleanup shared MongoDB container: %v\n", err)
	}
	return code
}

// SharedURI returns the URI of the package-wide container.
func SharedURI() string {
	if shared == nil {
		panic("shared MongoDB container not initialized")
	}
	return shared.URI
}

var dbNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_")

// DBName derives a unique database name from a test name.
func DBName(t testing.TB) string {
	name := dbNameReplacer.Replace(t.Name())
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
