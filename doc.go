// Package rivet assembles object graphs from constructor parameter
// types. It removes manual "new X(new Y(new Z()))" wiring: register
// components, then ask for the top of the graph and every dependency
// is located, constructed bottom-up, and injected.
//
// # Quick Start
//
// Register struct components and assemble a client:
//
//	type Database struct {
//	    DSN string `rivet:"setting:db.dsn"`
//	}
//
//	type Service struct {
//	    DB *Database
//	}
//
//	c := rivet.New()
//	rivet.MustRegister[*Database](c)
//	rivet.MustRegister[*Service](c)
//
//	svc := rivet.MustAssemble[*Service](c)
//
// # Components
//
// A component is a struct (or pointer to one) whose exported fields
// are its constructor parameters, or a factory function producing the
// component:
//
//	rivet.Register[*Service](c)                       // struct component
//	rivet.RegisterFactory[*Pool](c, NewPool)          // func(deps...) (*Pool, error)
//	rivet.RegisterInstance(c, cfg)                    // pre-built value
//
// Components are singletons unless registered with
// rivet.WithLifecycle(rivet.Transient): a singleton is constructed
// once per container and shared by every dependent; a transient is
// constructed fresh per assembly.
//
// # Parameter resolution
//
// Each parameter is filled from the first applicable source:
//
//  1. a caller override: rivet.WithOverride("Name", value)
//  2. multi-injection for []Capability fields: one instance per
//     matching provider, in registration order
//  3. a setting binding: `rivet:"setting:Section.Key"` read from the
//     configuration store
//  4. the unique matching provider, assembled recursively
//  5. a declared default: `default:"literal"` or WithFieldDefault
//
// A parameter none of these cover fails assembly with a
// MISSING_DEPENDENCY error. Fields tagged `rivet:"-"` are left alone;
// `rivet:"optional"` fields keep their zero value when unresolvable.
//
// # Interfaces and profiles
//
// A field declared as an interface is satisfied by the one registered
// component implementing it; more than one active candidate is an
// AMBIGUOUS_DEPENDENCY error. Providers can be scoped to activation
// profiles and selected per assembly:
//
//	rivet.Register[*PaidGateway](c, rivet.WithProfiles("prod"))
//	rivet.Register[*FakeGateway](c, rivet.WithProfiles("dev", "test"))
//
//	gw := rivet.MustAssemble[*Checkout](c, rivet.WithProfile("dev"))
//
// # Configuration
//
// Setting-bound parameters read from a Store, populated manually or
// from config files:
//
//	store, err := rivet.Load("myapp", []string{"config.toml"})
//	c := rivet.New(rivet.WithStore(store))
//
// Load merges the given files and lets MYAPP_SECTION_KEY environment
// variables override any key. Store.SetValues replaces the contents
// wholesale; Store.AddValues merges and refuses to overwrite.
//
// # Errors
//
// Every failure is an *Error carrying an ErrorCode and the resolution
// path that produced it. Match with errors.As or the predicates:
//
//	if rivet.IsMissingDependency(err) { ... }
//
// Cyclic graphs are rejected: assembly fails fast with
// CIRCULAR_DEPENDENCY when a component transitively requires itself,
// and Validate reports cycles without constructing anything.
//
// # Validation and debugging
//
//	err := c.Validate("prod")   // static satisfiability check
//	fmt.Print(c.SprintRegistry())
//
// The rivettest package provides helpers for wiring containers in
// tests.
package rivet
