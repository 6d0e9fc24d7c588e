package cloudstore

import "go.uber.org/fx"

var Module = fx.Module("cloudstore",
	fx.Provide(NewFromConfig),
)
