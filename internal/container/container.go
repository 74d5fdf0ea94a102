package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"user-directory-service/config"
)

// app-level container to share constructed infra across packages.
// Router can auto-wire modules from these singletons. Directory state is
// NOT held here; the repository is built and owned by the router wiring.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
