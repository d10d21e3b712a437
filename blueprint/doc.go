// Package blueprint defines the fixed per-task pipeline.
//
// A Blueprint is an ordered list of stages. Every task runs the same three
// steps strictly in sequence:
//
//  1. fetch_data: an HTTP GET bounded by a timeout. Any error aborts the
//     task with a Failed result whose reason tells a timeout apart from
//     other network failures.
//  2. long_delay: a fixed wait. It cannot fail.
//  3. emit_event: a best-effort notification. Its failure is logged and
//     never changes the outcome.
//
// Execute returns exactly one task.Result per call and never panics past
// its own boundary. Step failures, including panics, become Failed
// results inside the blueprint.
//
//	bp := blueprint.Default(cfg, blueprint.NewHTTPFetcher(client, cfg.FetchURL), blueprint.NewLogNotifier(log))
//	res := bp.Execute(ctx, task.Input{TaskID: 7, TaskType: "fetch"})
package blueprint
