package router

import (
	"math"
	"sort"
	"strings"
)

// Vectorizer maps text onto L2-normalized tf-idf vectors over a fixed
// vocabulary learned from the training corpus.
type Vectorizer struct {
	Vocab map[string]int
	IDF   []float64
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// FitVectorizer builds the vocabulary and smoothed idf weights:
// idf(t) = ln((1+n)/(1+df(t))) + 1. Terms are indexed in sorted order
// so fitting the same corpus always yields the same layout.
func FitVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocab: make(map[string]int, len(terms)),
		IDF:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.Vocab[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v
}

// Transform vectorizes one document. Terms outside the vocabulary are
// dropped.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, tok := range tokenize(text) {
		if i, ok := v.Vocab[tok]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
