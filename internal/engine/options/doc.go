// Package options provides cached, invalidation-aware access to the compiler
// arguments declared in a project's build script.
//
// A Provider memoizes the extracted arguments in a Cell. The cell is filled
// lazily on the first read after an invalidation and cleared whenever the
// project's build configuration changes, at which point every subscriber is
// notified so it can query again. A Registry hands out exactly one Provider
// per project root.
package options
