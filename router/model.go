package router

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Example is one labeled training utterance.
type Example struct {
	Text  string
	Label string
}

// Model is a fitted bag-of-words + multinomial logistic regression
// classifier routing utterances to one of the known labels.
type Model struct {
	vec     *Vectorizer
	labels  []string
	weights *mat.Dense // classes x (features+1), last column is the bias
}

// Train fits the classifier with full-batch gradient descent on the
// softmax cross-entropy loss.
func Train(examples []Example, epochs int, learningRate float64) *Model {
	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = ex.Text
	}
	vec := FitVectorizer(docs)

	labelSet := make(map[string]bool)
	for _, ex := range examples {
		labelSet[ex.Label] = true
	}
	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	labelIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	n := len(examples)
	d := len(vec.IDF) + 1 // bias column
	k := len(labels)

	x := mat.NewDense(n, d, nil)
	y := mat.NewDense(n, k, nil)
	for i, ex := range examples {
		row := vec.Transform(ex.Text)
		x.SetRow(i, append(row, 1))
		y.Set(i, labelIndex[ex.Label], 1)
	}

	w := mat.NewDense(k, d, nil)
	for epoch := 0; epoch < epochs; epoch++ {
		var scores mat.Dense
		scores.Mul(x, w.T())
		for i := 0; i < n; i++ {
			softmaxInPlace(scores.RawRowView(i))
		}

		// grad = (P - Y)^T X / n
		var diff mat.Dense
		diff.Sub(&scores, y)
		var grad mat.Dense
		grad.Mul(diff.T(), x)
		grad.Scale(learningRate/float64(n), &grad)
		w.Sub(w, &grad)
	}

	return &Model{vec: vec, labels: labels, weights: w}
}

// Predict classifies one utterance, returning the winning label and its
// softmax probability.
func (m *Model) Predict(text string) (string, float64) {
	row := append(m.vec.Transform(text), 1)
	x := mat.NewVecDense(len(row), row)

	scores := make([]float64, len(m.labels))
	for i := range m.labels {
		scores[i] = mat.Dot(m.weights.RowView(i), x)
	}
	softmaxInPlace(scores)

	best := 0
	for i, p := range scores {
		if p > scores[best] {
			best = i
		}
	}
	return m.labels[best], scores[best]
}

// Labels returns the label set in classifier order.
func (m *Model) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

func softmaxInPlace(scores []float64) {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}

// modelFile is the on-disk representation of a fitted model.
type modelFile struct {
	Vocab   map[string]int
	IDF     []float64
	Labels  []string
	Rows    int
	Cols    int
	Weights []float64
}

// Save serializes the fitted model with gob.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fail to create model file: %w", err)
	}
	defer f.Close()

	rows, cols := m.weights.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		data = append(data, m.weights.RawRowView(i)...)
	}

	file := modelFile{
		Vocab:   m.vec.Vocab,
		IDF:     m.vec.IDF,
		Labels:  m.labels,
		Rows:    rows,
		Cols:    cols,
		Weights: data,
	}
	if err := gob.NewEncoder(f).Encode(file); err != nil {
		return fmt.Errorf("fail to encode model: %w", err)
	}
	return nil
}

// Load reads a model previously written by Save.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fail to open model file: %w", err)
	}
	defer f.Close()

	var file modelFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("fail to decode model: %w", err)
	}

	return &Model{
		vec:     &Vectorizer{Vocab: file.Vocab, IDF: file.IDF},
		labels:  file.Labels,
		weights: mat.NewDense(file.Rows, file.Cols, file.Weights),
	}, nil
}
