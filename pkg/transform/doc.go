// Package transform holds the content transforms applied to source files:
// JavaScript minification, stylesheet prefixing plus minification, and HTML
// minification. Copies are handled by the executor and never reach this
// package.
//
// A Registry is built once per run from Options and maps each transform task
// kind to a Transformer. Transformers are stateless after construction and
// safe for concurrent use by the executor's workers.
package transform
