package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time for services that stamp records.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystem returns a UTC wall clock.
func NewSystem() Clock { return systemClock{} }

var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
