// Package component drives render passes.
//
// A Host owns a container view and a render function. Each call to Render
// asks the render function for a fresh node tree, reconciles it against
// the previous one into the container, runs the layout engine over the
// container and reports the pass to observers.
//
//	host := component.NewHost(view.NewStack(), func(ctx context.Context) *vtree.Node {
//	    return vtree.New(view.NewLabel, func(l *view.Label) { l.Text = title })
//	})
//	host.Mount(ctx)
//	title = "updated"
//	host.Render(ctx)
//
// Passes never overlap. Calling Render from inside a render function raises
// E004. Observers run after the pass has finished and may trigger another.
//
// Every pass runs inside an OpenTelemetry span named "vtree.render" that
// carries the pass counts as attributes. The tracer comes from the global
// provider unless WithTracerProvider is given.
package component
