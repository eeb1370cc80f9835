package startup

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestStartup(t *testing.T) {
	t.Run("should start dependencies in declaration order", func(t *testing.T) {
		var order []string

		boot := New(testLogger(), 1)
		boot.AddDependency(&Func{Name: "first", StartFunc: func(_ context.Context) error {
			order = append(order, "first")
			return nil
		}})
		boot.AddDependency(&Func{Name: "second", StartFunc: func(_ context.Context) error {
			order = append(order, "second")
			return nil
		}})

		assert.NoError(t, boot.Start(context.Background()))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("should start declared dependencies before their dependents", func(t *testing.T) {
		var order []string

		boot := New(testLogger(), 1)
		boot.AddDependency(&Func{Name: "server", Deps: []string{"database"}, StartFunc: func(_ context.Context) error {
			order = append(order, "server")
			return nil
		}})
		boot.AddDependency(&Func{Name: "database", StartFunc: func(_ context.Context) error {
			order = append(order, "database")
			return nil
		}})

		assert.NoError(t, boot.Start(context.Background()))
		assert.Equal(t, []string{"database", "server"}, order)
	})

	t.Run("should retry a failing startup up to maxAttempts", func(t *testing.T) {
		attempts := 0

		boot := New(testLogger(), 2)
		boot.AddDependency(&Func{Name: "flaky", StartFunc: func(_ context.Context) error {
			attempts++
			return errors.New("not yet")
		}})

		err := boot.Start(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("should not restart dependencies that already started", func(t *testing.T) {
		dbStarts := 0

		boot := New(testLogger(), 3)
		boot.AddDependency(&Func{Name: "database", StartFunc: func(_ context.Context) error {
			dbStarts++
			return nil
		}})

		flakyAttempts := 0
		boot.AddDependency(&Func{Name: "flaky", StartFunc: func(_ context.Context) error {
			flakyAttempts++
			if flakyAttempts < 2 {
				return errors.New("not yet")
			}
			return nil
		}})

		assert.NoError(t, boot.Start(context.Background()))
		assert.Equal(t, 1, dbStarts)
	})

	t.Run("should error when a dependency names an unknown dependency", func(t *testing.T) {
		boot := New(testLogger(), 1)
		boot.AddDependency(&Func{Name: "server", Deps: []string{"missing"}})

		assert.Error(t, boot.Start(context.Background()))
	})

	t.Run("should stop started dependencies in reverse order", func(t *testing.T) {
		var order []string

		boot := New(testLogger(), 1)
		boot.AddDependency(&Func{
			Name:     "database",
			StopFunc: func(_ context.Context) error { order = append(order, "database"); return nil },
		})
		boot.AddDependency(&Func{
			Name:     "server",
			StopFunc: func(_ context.Context) error { order = append(order, "server"); return nil },
		})

		assert.NoError(t, boot.Start(context.Background()))
		assert.NoError(t, boot.Stop(context.Background()))
		assert.Equal(t, []string{"server", "database"}, order)
	})
}
