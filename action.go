package main

import (
	"context"

	"github.com/cresta/release-publisher/logger"
	"github.com/cresta/release-publisher/publisher"
	"go.uber.org/fx"
)

// Action allows using fx to run CLI actions
// Basically from https://github.com/uber-go/fx/issues/755
type Action struct {
	sh        fx.Shutdowner
	publisher *publisher.Publisher
	logger    logger.Logger
	cancel    context.CancelFunc
}

func newAction(lc fx.Lifecycle, sh fx.Shutdowner, pub *publisher.Publisher, logger logger.Logger) *Action {
	act := &Action{
		sh:        sh,
		publisher: pub,
		logger:    logger,
		cancel:    func() {},
	}
	lc.Append(fx.Hook{
		OnStart: act.start,
		OnStop:  act.stop,
	})

	return act
}

func (a *Action) start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go a.run(ctx)
	return nil
}

func (a *Action) stop(_ context.Context) error {
	a.cancel()
	return nil
}

func (a *Action) run(ctx context.Context) {
	a.logger.Debugf("Starting action")
	defer a.logger.Debugf("Exiting action")
	runErr := a.publisher.Run(ctx)
	if runErr != nil {
		a.logger.Errorf("Failed to publish release: %v", runErr)
	}
	if err := a.sh.Shutdown(fx.ExitCode(publisher.ExitCode(runErr))); err != nil {
		a.logger.Errorf("Failed to shutdown: %v", err)
	}
}
