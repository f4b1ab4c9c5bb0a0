// Package search is a small deterministic in-memory index over the exercise
// catalog. An Index is immutable once built and safe for concurrent reads;
// callers rebuild it when the catalog changes.
//
// Scoring is Jaccard similarity between the query token set and a
// document's token set, |Q ∩ D| / |Q ∪ D|. A query token of at least
// MinPrefix letters also matches document tokens it prefixes, so "squ"
// finds "squats".
package search

import (
	"cmp"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinPrefix is the shortest query token allowed to prefix-match.
const MinPrefix = 3

const defaultK = 10

// Document is one searchable entry, typically an exercise name plus its
// category.
type Document struct {
	ID   string
	Text string
}

// Result is a ranked document with its similarity score in (0, 1].
type Result struct {
	ID    string
	Text  string
	Score float64
}

type doc struct {
	Document
	ntokens int
}

// Index maps tokens to the documents containing them.
type Index struct {
	docs     []doc
	postings map[string][]int
	vocab    []string // sorted keys of postings
}

// New indexes docs. Text is whitespace-normalized; documents without any
// word are skipped.
func New(docs []Document) *Index {
	idx := &Index{postings: make(map[string][]int)}
	for _, d := range docs {
		d.Text = strings.Join(strings.Fields(d.Text), " ")
		toks := tokenize(d.Text)
		if len(toks) == 0 {
			continue
		}
		pos := len(idx.docs)
		idx.docs = append(idx.docs, doc{Document: d, ntokens: len(toks)})
		for _, t := range toks {
			idx.postings[t] = append(idx.postings[t], pos)
		}
	}
	idx.vocab = make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		idx.vocab = append(idx.vocab, t)
	}
	sort.Strings(idx.vocab)
	return idx
}

// Len is the number of indexed documents.
func (idx *Index) Len() int { return len(idx.docs) }

// TopK returns up to k best matches, or nil when nothing matches; k <= 0
// means 10. Ties go to the shorter text, then lexical order.
func (idx *Index) TopK(query string, k int) []Result {
	q := tokenize(query)
	if len(q) == 0 || len(idx.docs) == 0 {
		return nil
	}
	if k <= 0 {
		k = defaultK
	}

	// hits[d] counts the query tokens that matched document d.
	hits := make(map[int]int)
	for _, qt := range q {
		for d := range idx.match(qt) {
			hits[d]++
		}
	}
	if len(hits) == 0 {
		return nil
	}

	out := make([]Result, 0, len(hits))
	for pos, over := range hits {
		d := idx.docs[pos]
		union := len(q) + d.ntokens - over
		out = append(out, Result{ID: d.ID, Text: d.Text, Score: float64(over) / float64(union)})
	}
	slices.SortFunc(out, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(utf8.RuneCountInString(a.Text), utf8.RuneCountInString(b.Text)); c != 0 {
			return c
		}
		return strings.Compare(a.Text, b.Text)
	})
	return out[:min(k, len(out))]
}

// match returns the set of documents hit by one query token.
func (idx *Index) match(qt string) map[int]struct{} {
	set := make(map[int]struct{})
	for _, d := range idx.postings[qt] {
		set[d] = struct{}{}
	}
	if utf8.RuneCountInString(qt) < MinPrefix {
		return set
	}
	for i := sort.SearchStrings(idx.vocab, qt); i < len(idx.vocab) && strings.HasPrefix(idx.vocab[i], qt); i++ {
		for _, d := range idx.postings[idx.vocab[i]] {
			set[d] = struct{}{}
		}
	}
	return set
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

// tokenize returns the distinct lower-cased words of s.
func tokenize(s string) []string {
	words := wordRE.FindAllString(strings.ToLower(s), -1)
	slices.Sort(words)
	return slices.Compact(words)
}
