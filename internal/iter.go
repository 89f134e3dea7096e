// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package internal holds helpers shared between avre packages.
package internal

import (
	"iter"
	"strconv"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IntDefines yields only the defines whose value parses as an integer
// (any base accepted by strconv.ParseInt with base 0).
func IntDefines(seq iter.Seq2[string, string]) iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for key, str := range seq {
			value, err := strconv.ParseInt(str, 0, 64)
			if err != nil {
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}
