package bootstrap

import (
	"promenu/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.BackendModule,
	components.UseCaseModule,
	components.HandlerModule,
)
