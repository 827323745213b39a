package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tjcastle/taskboard-api/internal/config"
	"github.com/tjcastle/taskboard-api/internal/platform/mongodb"
	"github.com/tjcastle/taskboard-api/internal/refsync"
	"github.com/tjcastle/taskboard-api/internal/service"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	client *mongo.Client

	userStore store.UserStore
	taskStore store.TaskStore

	dispatcher   *refsync.Dispatcher
	synchronizer refsync.Synchronizer

	taskService service.TaskService
	userService service.UserService
}

// newApplication connects to the database and wires every layer together.
// The returned application owns the Mongo client and the patch dispatcher;
// cleanup releases both.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, db, err := mongodb.Connect(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger,
		client: client,
	}

	app.userStore = mongodb.NewUserStore(db)
	app.taskStore = mongodb.NewTaskStore(db)

	applier := refsync.NewApplier(app.userStore, app.taskStore, logger)
	app.dispatcher = refsync.NewDispatcher(applier, refsync.DispatcherConfig{
		WorkerCount: cfg.Sync.WorkerCount,
		QueueSize:   cfg.Sync.QueueSize,
	}, logger)
	app.dispatcher.Start()

	app.synchronizer = refsync.NewSynchronizer(app.dispatcher, logger)

	app.taskService, err = service.NewTaskService(app.taskStore, app.synchronizer, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, app.synchronizer, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return app, nil
}

// cleanup stops the patch dispatcher (draining queued plans) and closes the
// database connection.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}

	if app.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.client.Disconnect(ctx); err != nil {
			app.logger.Error("failed to disconnect from database", "error", err)
		}
	}
}
