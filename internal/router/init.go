package router

import (
	userapp "user-directory-service/internal/application"
	"user-directory-service/internal/container"
	repouser "user-directory-service/internal/domain/repository"
	"user-directory-service/internal/infrastructure/memory"
	handlers "user-directory-service/internal/interface/http"
	"user-directory-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

// buildUserDeps constructs the repository explicitly and threads it through
// the service and handler. The store starts empty and is discarded with the
// process; nothing here is a package global.
func buildUserDeps() UserModuleDeps {
	repo := memory.NewUserRepository()
	service := userapp.NewService(repo, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
	if container.GetConfig() == nil || container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
