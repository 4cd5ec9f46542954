package rivet_test

import (
	"testing"

	"github.com/rivet-di/rivet"
)

func BenchmarkAssemble_SingletonCached(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c)
	rivet.MustAssemble[*Config](c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Config](c)
	}
}

func BenchmarkAssemble_Transient(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c, rivet.WithLifecycle(rivet.Transient))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Config](c)
	}
}

func BenchmarkAssemble_Chain(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c, rivet.WithLifecycle(rivet.Transient))
	rivet.MustRegister[*Database](c, rivet.WithLifecycle(rivet.Transient))
	rivet.MustRegister[*Server](c, rivet.WithLifecycle(rivet.Transient))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Server](c)
	}
}

func BenchmarkAssemble_Factory(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c)
	rivet.MustRegisterFactory[*Pool](c, NewPool, rivet.WithLifecycle(rivet.Transient))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Pool](c)
	}
}

func BenchmarkAssemble_Sequence(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*EnglishGreeter](c)
	rivet.MustRegister[*PirateGreeter](c)
	rivet.MustRegister[*Broadcast](c, rivet.WithLifecycle(rivet.Transient))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Broadcast](c)
	}
}

func BenchmarkAssemble_Settings(b *testing.B) {
	c := rivet.New()
	c.Store().SetValues(map[string]map[string]any{
		"limits": {
			"rate":    "2.5",
			"burst":   "10",
			"enabled": "true",
			"owner":   "ops",
		},
	})
	rivet.MustRegister[*Tunables](c, rivet.WithLifecycle(rivet.Transient))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rivet.MustAssemble[*Tunables](c)
	}
}

func BenchmarkAssemble_ParallelCached(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c)
	rivet.MustRegister[*Database](c)
	rivet.MustAssemble[*Database](c)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			rivet.MustAssemble[*Database](c)
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	c := rivet.New()
	rivet.MustRegister[*Config](c)
	rivet.MustRegister[*Database](c)
	rivet.MustRegister[*Server](c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Validate(""); err != nil {
			b.Fatal(err)
		}
	}
}
