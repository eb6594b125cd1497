// Package pkg provides the core libraries for Archigram diagram generation.
//
// # Overview
//
// Archigram turns a declarative description of a system architecture into
// a rendered diagram: boxes for components, nested clusters for grouping,
// and styled directed edges for the relationships between them. The pkg
// directory is organized into five main areas:
//
//  1. [diagram] - Domain model (nodes, clusters, edges, structural validation)
//  2. [render] - DOT generation and the Graphviz rendering backend
//  3. [pipeline] - Orchestration (assemble → check capability → render)
//  4. [cache] - Content-addressed artifact storage (file, Redis, MongoDB)
//  5. [workdir] - Scoped output-directory management with guaranteed restore
//
// # Architecture
//
// The typical data flow through Archigram:
//
//	TOML manifest / JSON spec
//	         ↓
//	    [pipeline] package (assemble the spec)
//	         ↓
//	    [diagram] package (build + finalize the model)
//	         ↓
//	    [render] package (DOT → PNG/SVG via Graphviz)
//	         ↓
//	    artifact in the output directory
//
// # Quick Start
//
//	b := diagram.New("Service Overview")
//	api, _ := b.AddNode(nil, "api", "API Gateway", "network")
//	db, _ := b.AddNode(nil, "db", "Postgres", "storage")
//	_ = b.AddEdge(api.ID, []string{db.ID}, "reads", nil)
//	d, err := b.Finalize()
//	if err != nil {
//	    // every structural violation, aggregated
//	}
//	result := render.NewGraphviz().Render(ctx, d)
package pkg
