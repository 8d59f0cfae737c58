package coordinator

import "errors"

var (
	// ErrLoadSchedule is returned when the scene loader refuses a load.
	ErrLoadSchedule = errors.New("unable to schedule level load")

	// ErrUnloadSchedule is returned when the scene loader refuses an unload.
	ErrUnloadSchedule = errors.New("unable to schedule level unload")

	errNilOperation = errors.New("loader returned no operation")
)
