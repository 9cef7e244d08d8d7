package booster

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goml-dev/goboost/pkg/errors"
)

// Dataset holds training data for a booster.
type Dataset struct {
	// Data matrix (samples x features).
	Data *mat.Dense
	// Label per sample.
	Label []float64
	// Optional feature names, used in dumps and importance output.
	FeatureNames []string

	numData     int
	numFeatures int
}

// NewDataset creates a dataset from a matrix and labels.
func NewDataset(X mat.Matrix, label []float64) (*Dataset, error) {
	nrow, ncol := X.Dims()
	if nrow == 0 || ncol == 0 {
		return nil, errors.ErrEmptyData
	}
	if label != nil && len(label) != nrow {
		return nil, errors.Newf("label size mismatch: expected %d, got %d", nrow, len(label))
	}

	return &Dataset{
		Data:        mat.DenseCopyOf(X),
		Label:       label,
		numData:     nrow,
		numFeatures: ncol,
	}, nil
}

// NewDatasetFromSlice creates a dataset from a flat slice, row major or
// column major.
func NewDatasetFromSlice(data []float64, nrow, ncol int, rowMajor bool, label []float64) (*Dataset, error) {
	if len(data) != nrow*ncol {
		return nil, errors.Newf("data size mismatch: expected %d, got %d", nrow*ncol, len(data))
	}

	var dense *mat.Dense
	if rowMajor {
		dense = mat.NewDense(nrow, ncol, data)
	} else {
		temp := mat.NewDense(ncol, nrow, data)
		dense = mat.DenseCopyOf(temp.T())
	}

	return NewDataset(dense, label)
}

// SetFeatureNames attaches one name per feature column.
func (d *Dataset) SetFeatureNames(names []string) error {
	if len(names) != d.numFeatures {
		return errors.Newf("feature name count mismatch: expected %d, got %d", d.numFeatures, len(names))
	}
	d.FeatureNames = names
	return nil
}

// NumData returns the number of samples.
func (d *Dataset) NumData() int { return d.numData }

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int { return d.numFeatures }
