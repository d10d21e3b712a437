// Package bootstrap runs a finite job with a uniform lifecycle: validated
// configuration, a component registry started in order and stopped in
// reverse, lifecycle hooks, and cancellation on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(httpComponent)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return process(ctx)
//	})
package bootstrap
