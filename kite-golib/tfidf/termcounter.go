package tfidf

import "math"

// IDFCounter keeps the inverse-document-frequency weight of each term.
type IDFCounter struct {
	NumDocs int            `json:"num_docs"`
	DocFreq map[string]int `json:"doc_freq"`
}

// TrainIDFCounter returns an IDFCounter for a corpus of numDocs documents,
// where docFreq maps each term to the number of documents containing it.
func TrainIDFCounter(numDocs int, docFreq map[string]int) *IDFCounter {
	return &IDFCounter{
		NumDocs: numDocs,
		DocFreq: docFreq,
	}
}

// Weight returns the smoothed idf weight ln((1+N)/(1+df)) + 1 of a term, or 0
// for a term that never occurred in the corpus.
func (c *IDFCounter) Weight(term string) float64 {
	df, ok := c.DocFreq[term]
	if !ok || df == 0 {
		return 0
	}
	return math.Log(float64(1+c.NumDocs)/float64(1+df)) + 1
}
