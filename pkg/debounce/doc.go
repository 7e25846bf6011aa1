// Package debounce coalesces bursts of triggers into a single trailing call.
//
// A Group keeps one pending call per key so independent fields can be
// debounced side by side while a newer trigger for the same key replaces the
// older one. Timers come from a Clock, which lets tests advance time by hand
// and lets hosts plug in their own scheduler.
package debounce
