package log

// Standard attribute keys used across GoBoost logging. Keys follow a
// hierarchical naming convention ("model.kind", "data.samples") for
// structured log filtering.

// Model and operation context.
const (
	// ModelKindKey identifies the kind of booster ("tree", "linear").
	ModelKindKey = "model.kind"

	// OperationKey specifies the operation being performed.
	// Standard values: "train", "predict", "save", "load", "dump".
	OperationKey = "boost.operation"

	// ObjectiveKey records the objective function name.
	ObjectiveKey = "model.objective"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Training progress.
const (
	// RoundKey records the current boosting round during training.
	RoundKey = "training.round"

	// NumTreesKey records the number of trees in the ensemble.
	NumTreesKey = "model.num_trees"
)

// Persistence.
const (
	// PathKey records the file path for save/load operations.
	PathKey = "io.path"

	// BytesKey records the size of a serialized model in bytes.
	BytesKey = "io.bytes"
)
