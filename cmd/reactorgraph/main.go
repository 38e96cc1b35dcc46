// Command reactorgraph is a runnable walkthrough of the value graph
// engine, one scenario per phase, mirroring the shape of the graph's
// testable properties.
package main

import (
	"fmt"

	"github.com/coregx/reactor"
)

func main() {
	demoParityCounter()
	demoConditionalDependency()
	demoErrorCaching()
	demoWatcherNotification()
	demoPruning()
	demoLivenessHooks()
	fmt.Println("\n=== Demo Complete ===")
}

func demoParityCounter() {
	fmt.Println("=== Phase 1: Parity Counter ===")

	counter := reactor.NewState(0)
	isEven := reactor.NewComputed(func() bool {
		return counter.Get()%2 == 0
	})
	parity := reactor.NewComputed(func() string {
		if isEven.Get() {
			return "even"
		}
		return "odd"
	})

	fmt.Println("parity:", parity.Get()) // even

	counter.Set(2)
	fmt.Println("after Set(2), parity:", parity.Get()) // even, isEven's callback re-runs but yields the same value

	counter.Set(3)
	fmt.Println("after Set(3), parity:", parity.Get()) // odd
}

func demoConditionalDependency() {
	fmt.Println("\n=== Phase 2: Conditional Dependency ===")

	a := reactor.NewState(true)
	b := reactor.NewState(1)
	c := reactor.NewState(2)
	d := reactor.NewComputed(func() int {
		if a.Get() {
			return b.Get()
		}
		return c.Get()
	})

	fmt.Println("d:", d.Get()) // 1

	c.Set(99)
	fmt.Println("after c.Set(99), d:", d.Get()) // still 1, c wasn't a source

	a.Set(false)
	fmt.Println("after a.Set(false), d:", d.Get()) // 99, sources are now [a, c]

	b.Set(42)
	fmt.Println("after b.Set(42), d:", d.Get()) // still 99, b is no longer a source
}

func demoErrorCaching() {
	fmt.Println("\n=== Phase 3: Error Caching ===")

	s := reactor.NewState("first")
	c := reactor.NewComputed(func() string {
		panic(s.Get())
	})

	tryGet := func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Println("c.Get() panicked with:", r)
			}
		}()
		c.Get()
	}

	tryGet() // panics "first"
	tryGet() // panics "first" again, callback not re-invoked

	s.Set("second")
	tryGet() // panics "second"
}

func demoWatcherNotification() {
	fmt.Println("\n=== Phase 4: Watcher Notification ===")

	s := reactor.NewState(1)
	var log []string
	w := reactor.NewWatcher(func() {
		log = append(log, "N")
	})
	w.Watch(s)
	defer w.Unwatch(s)

	s.Set(2)
	fmt.Println("log after Set(2):", log) // [N]

	pending := w.GetPending()
	fmt.Println("pending watched nodes:", len(pending)) // 1: s itself, written since the last arm

	w.Watch() // re-arm
	s.Set(2)  // same value, no-op, no new entry
	fmt.Println("log after redundant Set(2):", log)
}

func demoPruning() {
	fmt.Println("\n=== Phase 5: Pruning ===")

	runs := map[string]int{}
	s := reactor.NewState(0)
	c1 := reactor.NewComputed(func() int {
		runs["c1"]++
		s.Get()
		return 1
	})
	c2 := reactor.NewComputed(func() int {
		runs["c2"]++
		return c1.Get() + 1
	})

	fmt.Println("c2:", c2.Get(), "runs:", runs) // 2, c1=1 c2=1

	s.Set(1)
	fmt.Println("after s.Set(1), c2:", c2.Get(), "runs:", runs) // still 2, c1=2 c2=1 (c2 not re-run)
}

func demoLivenessHooks() {
	fmt.Println("\n=== Phase 6: Liveness Hooks ===")

	s := reactor.NewStateWithOptions(1, reactor.Options[int]{
		OnWatched:   func() { fmt.Println("s: watched") },
		OnUnwatched: func() { fmt.Println("s: unwatched") },
	})
	c := reactor.NewComputed(func() int { return s.Get() })

	c.Get() // alone: no hooks fire, c is unowned

	w := reactor.NewWatcher(func() {})
	w.Watch(c) // s: watched
	w.Unwatch(c) // s: unwatched
}
