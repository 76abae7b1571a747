// Package lvlprob is your in-memory toolkit for approximate probabilistic
// inference on discrete models — from factor primitives to structured
// belief-propagation queries.
//
// 🚀 What is lvlprob?
//
//	A modern, dependency-light library that brings together:
//		• Factor primitives: discrete variables, extended ranges, semiring algebra
//		• Model building: Flip, Select, CPD, deterministic links, evidence
//		• Structured decomposition: a tree of solvable subproblems
//		• Belief propagation: bounded-iteration sum-product message passing
//		• Marginal queries: per-target distributions and expectations
//
// ✨ Why choose lvlprob?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Predictable cost – fixed iteration budgets, no hidden search
//   - Pure Go – no cgo, no native solver bindings
//   - Composable – every stage (factors, decomposition, BP) is usable alone
//
// Under the hood, everything is organized into five subpackages:
//
//	factor/    — discrete variables, semirings, dense factor algebra
//	model/     — universes, elements, observations & soft constraints
//	decompose/ — component registry, Problem tree, recursive solver
//	bp/        — loopy sum-product subsolver for a single Problem
//	marginal/  — top-level algorithm: solve, assemble, normalize, query
//
// Quick ASCII example:
//
//	    A ──► B
//
//	A is Bernoulli(0.3) and B copies A; querying B recovers (0.7, 0.3).
//
// Dive into the per-package doc.go files for algorithm outlines, complexity
// notes, and the exact normalization semantics around irregular range values.
//
//	go get github.com/katalvlaran/lvlprob
package lvlprob
