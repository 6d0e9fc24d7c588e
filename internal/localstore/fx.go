package localstore

import "go.uber.org/fx"

var Module = fx.Module("localstore",
	fx.Provide(New),
)
