package booster

import (
	"bytes"
	"encoding/gob"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/goml-dev/goboost/pkg/errors"
	"github.com/goml-dev/goboost/pkg/log"
)

// modelMagic prefixes every model file: format name plus a version byte.
var modelMagic = []byte{'G', 'B', 'S', 'T', 1}

// modelFile is the gob image of a handle. Trained parameters and the
// attribute store travel together so attributes survive a Save/Load cycle.
type modelFile struct {
	Kind         ModelKind
	Params       map[string]string
	Objective    string
	InitScore    float64
	NumFeatures  int
	FeatureNames []string
	Trees        []Tree
	Weights      *LinearWeights
	NumIter      int
	Attrs        map[string]string
}

// Save serializes the handle to a single binary file at path, overwriting
// any existing file.
func (b *Booster) Save(path string) error {
	if err := b.check("Save"); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create model file %s", path)
	}
	defer file.Close()

	if err := b.SaveToWriter(file); err != nil {
		return err
	}

	slog.Debug("model saved",
		log.OperationKey, "save",
		slog.String(log.PathKey, path),
		slog.Int(log.NumTreesKey, len(b.Trees)),
	)
	return nil
}

// SaveToWriter writes the serialized handle to w.
func (b *Booster) SaveToWriter(w io.Writer) error {
	if err := b.check("SaveToWriter"); err != nil {
		return err
	}

	if _, err := w.Write(modelMagic); err != nil {
		return errors.Wrap(err, "failed to write model header")
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "failed to create compressor")
	}

	img := modelFile{
		Kind:         b.Kind,
		Params:       b.Params,
		Objective:    b.Objective,
		InitScore:    b.InitScore,
		NumFeatures:  b.NumFeatures,
		FeatureNames: b.FeatureNames,
		Trees:        b.Trees,
		Weights:      b.Weights,
		NumIter:      b.NumIter,
		Attrs:        b.attrs.snapshot(),
	}

	if err := gob.NewEncoder(zw).Encode(&img); err != nil {
		zw.Close()
		return errors.Wrap(err, "failed to encode model")
	}
	return zw.Close()
}

// Load deserializes a handle from the binary file at path. It returns
// FileNotFoundError when the file does not exist and CorruptFormatError
// when the file cannot be decoded.
func Load(path string) (*Booster, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path, err)
		}
		return nil, errors.Wrapf(err, "failed to open model file %s", path)
	}
	defer file.Close()

	b, err := LoadFromReader(file)
	if err != nil {
		var corrupt *errors.CorruptFormatError
		if errors.As(err, &corrupt) && corrupt.Path == "" {
			return nil, errors.NewCorruptFormatError(path, corrupt.Reason, corrupt.Err)
		}
		return nil, err
	}

	slog.Debug("model loaded",
		log.OperationKey, "load",
		slog.String(log.PathKey, path),
		slog.Int(log.NumTreesKey, len(b.Trees)),
	)
	return b, nil
}

// LoadFromReader deserializes a handle from r.
func LoadFromReader(r io.Reader) (*Booster, error) {
	header := make([]byte, len(modelMagic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.NewCorruptFormatError("", "truncated header", err)
	}
	if !bytes.Equal(header, modelMagic) {
		return nil, errors.NewCorruptFormatError("", "bad magic bytes", nil)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.NewCorruptFormatError("", "bad compression stream", err)
	}
	defer zr.Close()

	var img modelFile
	if err := gob.NewDecoder(zr).Decode(&img); err != nil {
		return nil, errors.NewCorruptFormatError("", "failed to decode model", err)
	}
	if img.Kind == KindUnknown {
		return nil, errors.NewCorruptFormatError("", "unknown model kind", nil)
	}
	if img.Kind == KindLinear && img.Weights == nil {
		return nil, errors.NewCorruptFormatError("", "linear model without weights", nil)
	}

	b := &Booster{
		Kind:         img.Kind,
		Params:       img.Params,
		Objective:    img.Objective,
		InitScore:    img.InitScore,
		NumFeatures:  img.NumFeatures,
		FeatureNames: img.FeatureNames,
		Trees:        img.Trees,
		Weights:      img.Weights,
		NumIter:      img.NumIter,
	}
	b.attrs.restore(img.Attrs)
	return b, nil
}
