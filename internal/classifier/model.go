// Package classifier runs inference for the exported TF-IDF + multinomial
// naive Bayes case outcome model.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

var (
	ErrModelNotLoaded = errors.New("classifier: model not loaded")
	ErrEmptyInput     = errors.New("classifier: empty input")
)

// Predictor is what the chat pipeline needs from a classifier.
type Predictor interface {
	Predict(text string) (Prediction, error)
}

// Artifact is the JSON export of the fitted vectorizer and estimator.
type Artifact struct {
	Classes        []string       `json:"classes"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	StopWords      []string       `json:"stop_words"`
	SublinearTF    bool           `json:"sublinear_tf"`
}

// Model is safe for concurrent use; nothing mutates it after Load.
type Model struct {
	labels    []Label
	vocab     map[string]int
	idf       []float64
	prior     []float64
	logProb   [][]float64
	stop      map[string]struct{}
	sublinear bool

	loadErr error
}

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Load reads the artifact at path. It never returns a nil Model: when the
// artifact is missing or invalid the returned Model reports ErrModelNotLoaded
// from every Predict call.
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
		return &Model{loadErr: err}, err
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		err = fmt.Errorf("%w: decode %s: %v", ErrModelNotLoaded, path, err)
		return &Model{loadErr: err}, err
	}
	m, err := FromArtifact(a)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
		return &Model{loadErr: err}, err
	}
	return m, nil
}

func FromArtifact(a Artifact) (*Model, error) {
	nClasses := len(a.Classes)
	if nClasses < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", nClasses)
	}
	nFeatures := len(a.IDF)
	if nFeatures == 0 {
		return nil, errors.New("empty idf")
	}
	if len(a.ClassLogPrior) != nClasses || len(a.FeatureLogProb) != nClasses {
		return nil, errors.New("class dimensions mismatch")
	}
	for i, row := range a.FeatureLogProb {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("feature_log_prob[%d] has %d features, want %d", i, len(row), nFeatures)
		}
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return nil, fmt.Errorf("vocabulary term %q index %d out of range", term, idx)
		}
	}

	labels := make([]Label, nClasses)
	for i, c := range a.Classes {
		l, err := ParseLabel(c)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}

	stop := make(map[string]struct{}, len(a.StopWords))
	for _, w := range a.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	return &Model{
		labels:    labels,
		vocab:     a.Vocabulary,
		idf:       a.IDF,
		prior:     a.ClassLogPrior,
		logProb:   a.FeatureLogProb,
		stop:      stop,
		sublinear: a.SublinearTF,
	}, nil
}

func (m *Model) Loaded() bool {
	return m != nil && m.loadErr == nil && len(m.labels) > 0
}

// Predict classifies the case text. The same text and artifact always give
// the same prediction.
func (m *Model) Predict(text string) (Prediction, error) {
	if !m.Loaded() {
		if m != nil && m.loadErr != nil {
			return Prediction{}, m.loadErr
		}
		return Prediction{}, ErrModelNotLoaded
	}
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyInput
	}

	x := m.vectorize(text)
	jll := make([]float64, len(m.labels))
	for c := range m.labels {
		s := m.prior[c]
		for idx, v := range x {
			s += v * m.logProb[c][idx]
		}
		jll[c] = s
	}
	probs := softmax(jll)

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return Prediction{Label: m.labels[best], Confidence: probs[best]}, nil
}

func (m *Model) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, skip := m.stop[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

// vectorize returns the L2-normalised sparse tf-idf vector.
func (m *Model) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, t := range m.tokenize(text) {
		if idx, ok := m.vocab[t]; ok {
			counts[idx]++
		}
	}
	var norm float64
	for idx, tf := range counts {
		if m.sublinear {
			tf = 1 + math.Log(tf)
		}
		v := tf * m.idf[idx]
		counts[idx] = v
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

func softmax(v []float64) []float64 {
	maxV := math.Inf(-1)
	for _, x := range v {
		if x > maxV {
			maxV = x
		}
	}
	var sum float64
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Exp(x - maxV)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
