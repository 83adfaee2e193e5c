package domain

import (
	"fmt"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
	}

	ErrInvalidFoldCount = &AppError{
		Code:    "INVALID_FOLD_COUNT",
		Message: "Fold count exceeds the number of available pairs",
	}

	ErrDimensionMismatch = &AppError{
		Code:    "EMBEDDING_DIM_MISMATCH",
		Message: "Left and right embedding streams have different dimensions",
	}

	ErrEmptyThresholds = &AppError{
		Code:    "EMPTY_THRESHOLD_GRID",
		Message: "Threshold grid is empty",
	}

	ErrInvalidPairSet = &AppError{
		Code:    "INVALID_PAIR_SET",
		Message: "Pair set is malformed: image count must be even and match labels",
	}

	ErrBatchExceedsSet = &AppError{
		Code:    "BATCH_EXCEEDS_SET",
		Message: "Batch size is larger than the dataset",
	}

	ErrDatasetNotFound = &AppError{
		Code:    "DATASET_NOT_FOUND",
		Message: "Dataset file not found",
	}

	ErrInvalidDatasetFile = &AppError{
		Code:    "INVALID_DATASET_FILE",
		Message: "Dataset file is corrupted or has an unknown format",
	}

	ErrProviderUnavailable = &AppError{
		Code:    "PROVIDER_UNAVAILABLE",
		Message: "Embedding provider is unavailable",
	}

	ErrInvalidBatch = &AppError{
		Code:    "INVALID_BATCH",
		Message: "Image batch is empty or has mismatched dimensions",
	}

	ErrRunNotFound = &AppError{
		Code:    "RUN_NOT_FOUND",
		Message: "Evaluation run not found",
	}
)
