// Package java is the emission engine: an in-memory AST of Java program
// elements (type references, annotations, parameters, lambdas, fields,
// methods, type declarations) rendered into formatted source text.
//
// Rendering a file is two sequential passes over the same immutable AST.
// The collect pass emits everything into a discarding sink while
// recording every class reference, producing the suggested-imports table;
// the render pass emits into the real sink consulting that table
// read-only. The real sink therefore never observes output from an AST
// that does not emit cleanly.
//
// All spec values are immutable and built through consuming builders.
// Their equality is deliberately defined by rendered text under the
// owning configuration rather than by structural comparison: two nodes
// that print the same are the same, and nodes from differently configured
// engines are never equal.
package java
