package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	internalserver "github.com/telemetryflow/telemetryflow-core-sub000/internal/server"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/seed"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/configuration"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/server"
)

func main() {
	conf := configuration.Use()
	logger := conf.Logger()
	if err := run(conf, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

func run(conf *configuration.Configuration, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}()

	permissionCache := cache.NewRedisCache(redisClient)
	publisher := eventbus.NewEventPublisher(logger)

	userRepo := persistence.NewUserRepository()
	roleRepo := persistence.NewRoleRepository()
	permRepo := persistence.NewPermissionRepository()
	groupRepo := persistence.NewGroupRepository()
	tenantRepo := persistence.NewTenantRepository()
	orgRepo := persistence.NewOrganizationRepository()
	workspaceRepo := persistence.NewWorkspaceRepository()
	regionRepo := persistence.NewRegionRepository()
	roleGrants := persistence.NewRoleGrantRepository()
	permGrants := persistence.NewPermissionGrantRepository()

	roleService := services.NewRoleService(roleRepo, permissionCache, publisher)
	userService := services.NewUserService(userRepo, permissionCache, publisher)
	groupService := services.NewGroupService(groupRepo, publisher)
	tenantService := services.NewTenantService(tenantRepo, publisher)
	orgService := services.NewOrganizationService(orgRepo, publisher)
	workspaceService := services.NewWorkspaceService(workspaceRepo, publisher)
	regionService := services.NewRegionService(regionRepo, publisher)
	assignmentService := services.NewAssignmentService(
		userRepo, roleRepo, permRepo, roleGrants, permGrants, permissionCache, publisher,
	)
	accessService := services.NewAccessService(
		userRepo, roleRepo, roleGrants, permGrants, permRepo, permissionCache, conf.Redis.CacheTTL,
	)
	seedCtx := composables.WithPool(
		composables.WithLogger(context.Background(), logrus.NewEntry(logger)), pool,
	)
	if err := composables.InTx(seedCtx, func(txCtx context.Context) error {
		if err := seed.Permissions(txCtx, permRepo); err != nil {
			return err
		}
		return seed.SystemRoles(txCtx, roleRepo)
	}); err != nil {
		return err
	}

	srv := internalserver.Default(&internalserver.DefaultOptions{
		Logger: logger,
		Pool:   pool,
		Controllers: []server.Controller{
			controllers.NewRolesController(roleService),
			controllers.NewUsersController(userService),
			controllers.NewGroupsController(groupService),
			controllers.NewAssignmentsController(assignmentService),
			controllers.NewAccessController(accessService),
			controllers.NewTenancyController(regionService, orgService, workspaceService, tenantService),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", conf.Server.Address).Info("starting server")
		errCh <- srv.Start(conf.Server.Address)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
}
