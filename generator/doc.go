// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package generator produces synthetic candidates for demos.

A Generator is either idle or running. While running it adds one random
candidate through its Adder every period (500ms by default). Each Add goes
through the registry, so generated candidates are broadcast like any other
roster change.

	gen := generator.New(reg, generator.DefaultPeriod, nil)
	if err := gen.Start(); errors.Is(err, generator.ErrAlreadyRunning) {
		// already generating
	}
	gen.Stop()

Stop cancels the ticker and waits for the goroutine to exit, so once it
returns no further candidate can appear. Only one Generator is created per
process; main owns it and hands it to the router.
*/
package generator
