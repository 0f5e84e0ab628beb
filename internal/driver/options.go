package driver

import (
	"fortio.org/safecast"

	"walle/internal/observ"
	"walle/internal/vm"
)

// Options configure one pipeline invocation.
type Options struct {
	MaxDiagnostics int  // 0 means unlimited
	ForwardLabels  bool // let GoTo name labels defined further down

	CanvasSize int
	MaxSteps   int
	OnPixel    vm.PixelFunc
	ExecTracer *vm.Tracer

	// Timer, when set, receives one phase per pipeline stage.
	Timer *observ.Timer
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}
